package entity

import (
	"context"
	"strings"
	"time"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusReachedOut Status = "Reached Out"
)

// DefaultCountry is stored when a submission leaves the country blank.
const DefaultCountry = "Unknown"

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusReachedOut
}

type Lead struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	LinkedInURL    string    `json:"linkedinUrl"`
	VisaCategories []string  `json:"visaCategories"`
	ResumeFileName string    `json:"resumeFileName"`
	Message        string    `json:"message"`
	Country        string    `json:"country"`
	Status         Status    `json:"status"` // Pending, Reached Out
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks the fields a submission must carry. It stops at the first
// missing field; ValidateFields reports all of them.
func (l *Lead) Validate() error {
	if errs := l.ValidateFields(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (l *Lead) ValidateFields() []*ValidationError {
	var errs []*ValidationError

	required := []struct {
		field string
		value string
	}{
		{"firstName", l.FirstName},
		{"lastName", l.LastName},
		{"email", l.Email},
		{"linkedinUrl", l.LinkedInURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, &ValidationError{Field: r.field, Message: "is required"})
		}
	}

	if !hasCategory(l.VisaCategories) {
		errs = append(errs, &ValidationError{Field: "visaCategories", Message: "select at least one visa category"})
	}
	if strings.TrimSpace(l.ResumeFileName) == "" {
		errs = append(errs, &ValidationError{Field: "resumeFileName", Message: "is required"})
	}
	if strings.TrimSpace(l.Message) == "" {
		errs = append(errs, &ValidationError{Field: "message", Message: "is required"})
	}

	return errs
}

// Clone returns a copy that shares no memory with l.
func (l Lead) Clone() Lead {
	if l.VisaCategories != nil {
		l.VisaCategories = append([]string(nil), l.VisaCategories...)
	}
	return l
}

func hasCategory(categories []string) bool {
	for _, c := range categories {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead Lead) (Lead, error)
	List(ctx context.Context) ([]Lead, error)
	Transition(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
