package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type EventType string

const (
	EventLeadSubmitted  EventType = "lead.submitted"
	EventLeadReachedOut EventType = "lead.reached_out"
)

// LeadEvent is the message body published for every lead change.
type LeadEvent struct {
	Type       EventType `json:"type"`
	LeadID     string    `json:"lead_id"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	Email      string    `json:"email,omitempty"`
	LinkedIn   string    `json:"linkedin_url,omitempty"`
	Visas      []string  `json:"visa_categories,omitempty"`
	Country    string    `json:"country,omitempty"`
	Message    string    `json:"message,omitempty"`
	Resume     string    `json:"resume_file_name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e LeadEvent) RoutingKey() string {
	return string(e.Type)
}

type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch channelPublisher
}

func NewProducer(ch channelPublisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         string(event.Type),
			MessageId:    event.LeadID,
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
