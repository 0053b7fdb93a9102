package usecase

import (
	"strings"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// ResumeRef is the file object the intake form sends. Only the name is kept.
type ResumeRef struct {
	Name string `json:"name"`
}

type SubmitLeadInput struct {
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	LinkedInURL    string     `json:"linkedinUrl"`
	VisaCategories []string   `json:"visaCategories"`
	ResumeFileName string     `json:"resumeFileName,omitempty"`
	Resume         *ResumeRef `json:"resume,omitempty"`
	Message        string     `json:"message"`
	Country        string     `json:"country,omitempty"`
}

// ResumeName prefers the explicit filename over the file object.
func (in SubmitLeadInput) ResumeName() string {
	if strings.TrimSpace(in.ResumeFileName) != "" {
		return in.ResumeFileName
	}
	if in.Resume != nil {
		return in.Resume.Name
	}
	return ""
}

func (in SubmitLeadInput) ToLead() entity.Lead {
	return entity.Lead{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		LinkedInURL:    in.LinkedInURL,
		VisaCategories: in.VisaCategories,
		ResumeFileName: in.ResumeName(),
		Message:        in.Message,
		Country:        in.Country,
	}
}

type MarkReachedOutInput struct {
	ID string `json:"id"`
}
