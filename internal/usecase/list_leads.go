package usecase

import (
	"context"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type ListLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo}
}

// Execute returns the collection in insertion order. Filtering and sorting
// happen on the client.
func (uc *ListLeadsUseCase) Execute(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Op: "list leads", Err: err}
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}
