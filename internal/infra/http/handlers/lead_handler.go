package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/http/middleware"
	"github.com/xavierca1/lead-intake/internal/logging"
	"github.com/xavierca1/lead-intake/internal/query"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

const (
	msgSubmitted      = "Lead submitted successfully!"
	msgFieldsRequired = "All fields are required."
	msgInvalidJSON    = "Invalid JSON"
	msgTooManyReqs    = "Too many requests. Please try again later."
	msgStatusUpdated  = "Lead status updated"
	msgIDRequired     = "Lead ID is required"
	msgNotFound       = "Lead not found"
	msgInternal       = "Internal server error"
)

type LeadHandler struct {
	submit      *usecase.SubmitLeadUseCase
	list        *usecase.ListLeadsUseCase
	reachedOut  *usecase.MarkReachedOutUseCase
	rateLimiter *RateLimiter
	logger      logging.Logger
}

func NewLeadHandler(
	submit *usecase.SubmitLeadUseCase,
	list *usecase.ListLeadsUseCase,
	reachedOut *usecase.MarkReachedOutUseCase,
	rateLimiter *RateLimiter,
	logger logging.Logger,
) *LeadHandler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LeadHandler{
		submit:      submit,
		list:        list,
		reachedOut:  reachedOut,
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "lead_handler"),
	}
}

func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msgTooManyReqs})
		return
	}

	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidJSON})
		return
	}

	lead, err := h.submit.Execute(ctx, input)
	if err != nil {
		var inputErr *usecase.InputError
		switch {
		case errors.As(err, &inputErr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgFieldsRequired, Fields: inputErr.FieldNames()})
		case errors.Is(err, entity.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgFieldsRequired})
		default:
			h.logger.Error(ctx, "submit lead failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
		}
		return
	}

	middleware.RecordLeadSubmitted()
	h.logger.Debug(ctx, "lead accepted", "lead_id", lead.ID)
	writeJSON(w, http.StatusOK, successResponse{Success: msgSubmitted})
}

// List returns the collection in store order. When any of search, status,
// sortBy or sortOrder is given the list is derived server side with the same
// rules the dashboard applies.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	leads, err := h.list.Execute(ctx)
	if err != nil {
		h.logger.Error(ctx, "list leads failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
		return
	}

	if p, ok := queryParams(r); ok {
		leads = query.Derive(leads, p)
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) MarkReachedOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input usecase.MarkReachedOutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidJSON})
		return
	}

	if err := h.reachedOut.Execute(ctx, input); err != nil {
		h.writeTransitionError(w, r, err)
		return
	}

	middleware.RecordLeadReachedOut()
	writeJSON(w, http.StatusOK, messageResponse{Message: msgStatusUpdated})
}

func (h *LeadHandler) writeTransitionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgIDRequired})
	case errors.Is(err, entity.ErrLeadNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: msgNotFound})
	default:
		h.logger.Error(r.Context(), "mark reached out failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgInternal})
	}
}

func queryParams(r *http.Request) (query.Params, bool) {
	q := r.URL.Query()
	if !q.Has("search") && !q.Has("status") && !q.Has("sortBy") && !q.Has("sortOrder") {
		return query.Params{}, false
	}

	p := query.DefaultParams()
	p.SearchQuery = q.Get("search")
	if s := entity.Status(q.Get("status")); s.Valid() {
		p.StatusFilter = s
	}
	if q.Has("sortBy") {
		// unknown keys are passed through and sort by createdAt
		p.SortBy = query.SortKey(q.Get("sortBy"))
	}
	if o, ok := query.ParseOrder(q.Get("sortOrder")); ok {
		p.SortOrder = o
	}
	return p, true
}
