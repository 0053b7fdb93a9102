package usecase

import (
	"context"

	"github.com/xavierca1/lead-intake/internal/infra/queue"
)

type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error
}

// PublishObserver is told about every publish attempt, failed or not.
type PublishObserver func(event queue.LeadEvent, err error)
