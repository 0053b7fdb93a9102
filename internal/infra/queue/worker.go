package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/lead-intake/internal/logging"
)

// LeadNotifier tells the intake team about a new submission.
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, event LeadEvent) error
}

// LeadForwarder pushes a new submission into the external CRM.
type LeadForwarder interface {
	ForwardLead(ctx context.Context, event LeadEvent) (int, error)
}

type deliveryConsumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel   deliveryConsumer
	Notifier  LeadNotifier  // optional
	Forwarder LeadForwarder // optional
	Logger    logging.Logger

	// OnIntegrationError, when set, is called with "mail" or "crm" for every
	// failed downstream call.
	OnIntegrationError func(service string)
}

func NewWorker(ch deliveryConsumer, notifier LeadNotifier, forwarder LeadForwarder, logger logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Worker{
		Channel:   ch,
		Notifier:  notifier,
		Forwarder: forwarder,
		Logger:    logger.With("component", "lead-events-worker"),
	}
}

// Start consumes queueName until ctx is done or the delivery channel closes.
// Messages are acked manually: malformed or failed ones are rejected without
// requeue so they land in the dead letter queue.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info(ctx, "worker waiting for lead events", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info(ctx, "worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.Logger.Warn(ctx, "delivery channel closed")
				return nil
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var event LeadEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.Logger.Error(ctx, "invalid lead event payload", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.processMessage(ctx, event); err != nil {
		w.Logger.Error(ctx, "lead event processing failed", "type", event.Type, "lead_id", event.LeadID, "error", err)
		_ = d.Nack(false, false)
		return
	}

	w.Logger.Info(ctx, "lead event processed", "type", event.Type, "lead_id", event.LeadID)
	_ = d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, event LeadEvent) error {
	switch event.Type {
	case EventLeadSubmitted:
		return w.processSubmitted(ctx, event)

	case EventLeadReachedOut:
		// nothing downstream cares yet, the log line is the audit trail
		w.Logger.Info(ctx, "lead reached out", "lead_id", event.LeadID)
		return nil

	default:
		w.Logger.Warn(ctx, "unknown lead event type, dropping", "type", event.Type)
		return nil
	}
}

// processSubmitted forwards to the CRM before mailing. Once a CRM lead exists
// the message is acked even if the mail fails, since a replay from the dead
// letter queue would open a second CRM lead.
func (w *Worker) processSubmitted(ctx context.Context, event LeadEvent) error {
	forwarded := false
	if w.Forwarder != nil {
		crmID, err := w.Forwarder.ForwardLead(ctx, event)
		if err != nil {
			w.integrationFailed("crm")
			return fmt.Errorf("forward to crm: %w", err)
		}
		forwarded = true
		w.Logger.Info(ctx, "lead forwarded to crm", "lead_id", event.LeadID, "crm_id", crmID)
	}

	if w.Notifier != nil {
		if err := w.Notifier.NotifyNewLead(ctx, event); err != nil {
			w.integrationFailed("mail")
			if forwarded {
				w.Logger.Error(ctx, "new lead mail not sent", "lead_id", event.LeadID, "error", err)
				return nil
			}
			return fmt.Errorf("notify: %w", err)
		}
	}
	return nil
}

func (w *Worker) integrationFailed(service string) {
	if w.OnIntegrationError != nil {
		w.OnIntegrationError(service)
	}
}
