package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/logging"
)

type SubmitLeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	events eventSink
}

func NewSubmitLeadUseCase(repo entity.LeadRepositoryInterface, publisher LeadEventPublisher, observer PublishObserver, logger logging.Logger) *SubmitLeadUseCase {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SubmitLeadUseCase{
		Repo:   repo,
		events: eventSink{publisher: publisher, observer: observer, logger: logger},
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (entity.Lead, error) {
	if missing := ValidateSubmitLeadInput(input); len(missing) > 0 {
		return entity.Lead{}, &InputError{Fields: missing}
	}

	lead, err := uc.Repo.Create(ctx, input.ToLead())
	if err != nil {
		if errors.Is(err, entity.ErrValidation) {
			return entity.Lead{}, err
		}
		return entity.Lead{}, &TechnicalError{Op: "create lead", Err: err}
	}

	uc.events.logger.Info(ctx, "lead submitted", "lead_id", lead.ID, "country", lead.Country)
	uc.events.publish(ctx, submittedEvent(lead))

	return lead, nil
}
