package mail

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/lead-intake/internal/infra/queue"
)

//go:embed templates/new_lead.html
var newLeadTemplate string

var newLeadTmpl = template.Must(template.New("new_lead").Parse(newLeadTemplate))

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// NotifyNewLead mails the intake inbox a summary of a fresh submission.
func (s *EmailSender) NotifyNewLead(ctx context.Context, event queue.LeadEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.buildNewLeadMessage(event)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send smtp: %w", err)
	}
	return nil
}

func (s *EmailSender) buildNewLeadMessage(event queue.LeadEvent) (*gomail.Message, error) {
	data := s.newLeadData(event)
	body, err := renderNewLead(data)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	if event.Email != "" {
		m.SetHeader("Reply-To", event.Email)
	}
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", data.FullName))
	m.SetBody("text/html", body)
	return m, nil
}

func (s *EmailSender) newLeadData(event queue.LeadEvent) NewLeadEmailData {
	return NewLeadEmailData{
		FullName:     strings.TrimSpace(event.FirstName + " " + event.LastName),
		Email:        event.Email,
		LinkedIn:     event.LinkedIn,
		Country:      event.Country,
		Visas:        strings.Join(event.Visas, ", "),
		Resume:       event.Resume,
		Message:      event.Message,
		SubmittedAt:  event.OccurredAt.Format(time.RFC1123),
		DashboardURL: s.DashboardURL,
	}
}

func renderNewLead(data NewLeadEmailData) (string, error) {
	var body bytes.Buffer
	if err := newLeadTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render new lead template: %w", err)
	}
	return body.String(), nil
}
