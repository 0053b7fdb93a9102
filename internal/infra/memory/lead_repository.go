// Package memory keeps the canonical lead collection in process memory.
// Nothing survives a restart.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/lead-intake/internal/entity"
)

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)

type LeadRepository struct {
	mu    sync.RWMutex
	leads []entity.Lead
	index map[string]int

	now   func() time.Time
	newID func() string
}

type Option func(*LeadRepository)

func WithClock(now func() time.Time) Option {
	return func(r *LeadRepository) {
		if now != nil {
			r.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(r *LeadRepository) {
		if gen != nil {
			r.newID = gen
		}
	}
}

func NewLeadRepository(opts ...Option) *LeadRepository {
	r := &LeadRepository{
		index: make(map[string]int),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create validates the submission and appends it with a fresh id, Pending
// status and the current time. The collection is untouched on error.
func (r *LeadRepository) Create(ctx context.Context, lead entity.Lead) (entity.Lead, error) {
	if err := lead.Validate(); err != nil {
		return entity.Lead{}, err
	}

	lead = lead.Clone()
	if strings.TrimSpace(lead.Country) == "" {
		lead.Country = entity.DefaultCountry
	}
	lead.Status = entity.StatusPending

	r.mu.Lock()
	defer r.mu.Unlock()

	lead.ID = r.uniqueID()
	lead.CreatedAt = r.now()
	r.append(lead)

	return lead.Clone(), nil
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, l.Clone())
	}
	return out, nil
}

// Transition marks the lead as reached out. The current status is not
// checked: applying it to a lead that was already reached out is a no-op
// overwrite.
func (r *LeadRepository) Transition(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return entity.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return entity.ErrLeadNotFound
	}
	r.leads[i].Status = entity.StatusReachedOut
	return nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context) (map[entity.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[entity.Status]int{
		entity.StatusPending:    0,
		entity.StatusReachedOut: 0,
	}
	for _, l := range r.leads {
		counts[l.Status]++
	}
	return counts, nil
}

func (r *LeadRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

// uniqueID must be called with mu held.
func (r *LeadRepository) uniqueID() string {
	for {
		id := r.newID()
		if _, taken := r.index[id]; !taken && id != "" {
			return id
		}
	}
}

// append must be called with mu held.
func (r *LeadRepository) append(lead entity.Lead) {
	r.index[lead.ID] = len(r.leads)
	r.leads = append(r.leads, lead)
}
