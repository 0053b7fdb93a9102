package client

import (
	"context"
	"sync"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/query"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type FetchStatus string

const (
	StatusIdle      FetchStatus = "idle"
	StatusLoading   FetchStatus = "loading"
	StatusSucceeded FetchStatus = "succeeded"
	StatusFailed    FetchStatus = "failed"
)

// Snapshot is a consistent copy of the dashboard state.
type Snapshot struct {
	Leads  []entity.Lead
	Status FetchStatus
	Err    string
	Params query.Params
}

// State holds the fetched copy of the lead list, the query parameters and
// the fetch lifecycle. The lock is never held across a call to the service,
// so overlapping fetches resolve last-writer-wins.
type State struct {
	api LeadAPI

	mu     sync.RWMutex
	leads  []entity.Lead
	status FetchStatus
	err    string
	params query.Params
}

func NewState(api LeadAPI) *State {
	return &State{
		api:    api,
		leads:  []entity.Lead{},
		status: StatusIdle,
		params: query.DefaultParams(),
	}
}

// FetchLeads replaces the local copy on success. On failure the previous
// list stays and the error message is recorded.
func (s *State) FetchLeads(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.mu.Unlock()

	leads, err := s.api.ListLeads(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.err = err.Error()
		return err
	}
	s.leads = cloneLeads(leads)
	s.status = StatusSucceeded
	s.err = ""
	return nil
}

// MarkReachedOut asks the service to transition the lead and, once it
// agrees, updates the local record without refetching.
func (s *State) MarkReachedOut(ctx context.Context, id string) error {
	if err := s.api.MarkReachedOut(ctx, id); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads[i].Status = entity.StatusReachedOut
		}
	}
	return nil
}

// Submit forwards a new lead. The local list is not touched; the next fetch
// picks it up.
func (s *State) Submit(ctx context.Context, input usecase.SubmitLeadInput) error {
	if err := s.api.SubmitLead(ctx, input); err != nil {
		s.setErr(err)
		return err
	}
	return nil
}

func (s *State) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SearchQuery = q
}

func (s *State) SetStatusFilter(status entity.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.StatusFilter = status
}

func (s *State) SetSortBy(key query.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SortBy = key
}

func (s *State) SetSortOrder(order query.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SortOrder = order
}

// ToggleSort applies a column header click.
func (s *State) ToggleSort(key query.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.params.ToggleSort(key)
}

// Visible is the list the dashboard renders.
func (s *State) Visible() []entity.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Derive copies records but shares their category slices.
	return cloneLeads(query.Derive(s.leads, s.params))
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Leads:  cloneLeads(s.leads),
		Status: s.status,
		Err:    s.err,
		Params: s.params,
	}
}

func (s *State) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err.Error()
}

func cloneLeads(in []entity.Lead) []entity.Lead {
	out := make([]entity.Lead, 0, len(in))
	for _, l := range in {
		out = append(out, l.Clone())
	}
	return out
}
