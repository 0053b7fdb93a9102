package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/logging"
)

type MarkReachedOutUseCase struct {
	Repo   entity.LeadRepositoryInterface
	events eventSink
	now    func() time.Time
}

func NewMarkReachedOutUseCase(repo entity.LeadRepositoryInterface, publisher LeadEventPublisher, observer PublishObserver, logger logging.Logger) *MarkReachedOutUseCase {
	if logger == nil {
		logger = logging.Nop()
	}
	return &MarkReachedOutUseCase{
		Repo:   repo,
		events: eventSink{publisher: publisher, observer: observer, logger: logger},
		now:    time.Now,
	}
}

func (uc *MarkReachedOutUseCase) Execute(ctx context.Context, input MarkReachedOutInput) error {
	// ids are matched exactly; only the blank check ignores whitespace
	id := input.ID
	if strings.TrimSpace(id) == "" {
		return entity.ErrInvalidID
	}

	if err := uc.Repo.Transition(ctx, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) || errors.Is(err, entity.ErrInvalidID) {
			return err
		}
		return &TechnicalError{Op: "transition lead", Err: err}
	}

	uc.events.logger.Info(ctx, "lead reached out", "lead_id", id)
	uc.events.publish(ctx, reachedOutEvent(id, uc.now()))

	return nil
}
