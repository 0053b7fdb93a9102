package memory

import (
	"strings"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// Seed loads the demo leads the dashboard ships with. It bypasses Create so
// the fixed ids and statuses are kept; leads whose id is already present are
// skipped.
func (r *LeadRepository) Seed(leads []entity.Lead) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, l := range leads {
		if l.ID == "" {
			continue
		}
		if _, taken := r.index[l.ID]; taken {
			continue
		}
		l = l.Clone()
		if l.CreatedAt.IsZero() {
			l.CreatedAt = r.now()
		}
		if !l.Status.Valid() {
			l.Status = entity.StatusPending
		}
		r.append(l)
		added++
	}
	return added
}

// DemoLeads returns the eight sample applicants: seven pending and one
// already reached out.
func DemoLeads(createdAt time.Time) []entity.Lead {
	demo := []struct {
		id, first, last, message, country string
		status                            entity.Status
	}{
		{"1", "Jorge", "Ruiz", "Interested in a job", "Mexico", entity.StatusPending},
		{"2", "Bahar", "Zamir", "Looking for opportunities", "Mexico", entity.StatusPending},
		{"3", "Mary", "Lopez", "Seeking new roles", "Brazil", entity.StatusPending},
		{"4", "Li", "Zijin", "Exploring career prospects", "South Korea", entity.StatusPending},
		{"5", "Mark", "Antonov", "Open to opportunities", "Russia", entity.StatusPending},
		{"6", "Jane", "Ma", "Looking for job openings", "Mexico", entity.StatusPending},
		{"7", "Anand", "Jain", "Interested in new positions", "Mexico", entity.StatusReachedOut},
		{"8", "Anna", "Voronova", "Searching for opportunities", "France", entity.StatusPending},
	}

	leads := make([]entity.Lead, 0, len(demo))
	for _, d := range demo {
		handle := strings.ToLower(d.first) + strings.ToLower(d.last)
		leads = append(leads, entity.Lead{
			ID:             d.id,
			FirstName:      d.first,
			LastName:       d.last,
			Email:          strings.ToLower(d.first) + "." + strings.ToLower(d.last) + "@example.com",
			LinkedInURL:    "linkedin.com/in/" + handle,
			VisaCategories: []string{"H1B"},
			ResumeFileName: "resume.pdf",
			Message:        d.message,
			Country:        d.country,
			Status:         d.status,
			CreatedAt:      createdAt,
		})
	}
	return leads
}
