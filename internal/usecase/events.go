package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
	"github.com/xavierca1/lead-intake/internal/logging"
)

func submittedEvent(l entity.Lead) queue.LeadEvent {
	return queue.LeadEvent{
		Type:       queue.EventLeadSubmitted,
		LeadID:     l.ID,
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		Email:      l.Email,
		LinkedIn:   l.LinkedInURL,
		Visas:      l.VisaCategories,
		Country:    l.Country,
		Message:    l.Message,
		Resume:     l.ResumeFileName,
		OccurredAt: l.CreatedAt,
	}
}

func reachedOutEvent(id string, at time.Time) queue.LeadEvent {
	return queue.LeadEvent{
		Type:       queue.EventLeadReachedOut,
		LeadID:     id,
		OccurredAt: at,
	}
}

// eventSink publishes best effort: a failed publish is logged and reported to
// the observer but never returned.
type eventSink struct {
	publisher LeadEventPublisher
	observer  PublishObserver
	logger    logging.Logger
}

func (s eventSink) publish(ctx context.Context, event queue.LeadEvent) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishLeadEvent(ctx, event)
	if s.observer != nil {
		s.observer(event, err)
	}
	if err != nil {
		s.logger.Warn(ctx, "lead event not published",
			"type", string(event.Type), "lead_id", event.LeadID, "error", err)
	}
}
