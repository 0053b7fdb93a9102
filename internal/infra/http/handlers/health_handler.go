package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type leadCounter interface {
	CountByStatus(ctx context.Context) (map[entity.Status]int, error)
}

// brokerConn is satisfied by *amqp091.Connection. Leave it nil when no
// broker is configured.
type brokerConn interface {
	IsClosed() bool
}

type HealthHandler struct {
	Store     leadCounter
	RabbitMQ  brokerConn
	StartTime time.Time
	Version   string
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Leads        map[string]int    `json:"leads"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(store leadCounter, rabbitMQ brokerConn, version string) *HealthHandler {
	return &HealthHandler{
		Store:     store,
		RabbitMQ:  rabbitMQ,
		StartTime: time.Now(),
		Version:   version,
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	leads := make(map[string]int)

	counts, err := h.Store.CountByStatus(r.Context())
	if err != nil {
		deps["store"] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		deps["store"] = "healthy"
		for status, n := range counts {
			leads[string(status)] = n
		}
	}

	if h.RabbitMQ == nil {
		deps["rabbitmq"] = "not configured"
	} else if h.RabbitMQ.IsClosed() {
		deps["rabbitmq"] = "unhealthy: connection closed"
	} else {
		deps["rabbitmq"] = "healthy"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Leads:        leads,
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
