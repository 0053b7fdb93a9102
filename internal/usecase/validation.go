package usecase

import "github.com/xavierca1/lead-intake/internal/entity"

// ValidateSubmitLeadInput reports every missing field, in form order.
func ValidateSubmitLeadInput(input SubmitLeadInput) []*entity.ValidationError {
	lead := input.ToLead()
	return lead.ValidateFields()
}
