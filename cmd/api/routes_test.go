package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-intake/internal/infra/http/handlers"
	"github.com/xavierca1/lead-intake/internal/infra/memory"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

func testRouter(t *testing.T) (*memory.LeadRepository, http.Handler) {
	t.Helper()
	store := memory.NewLeadRepository()
	store.Seed(memory.DemoLeads(time.Now()))

	return store, newRouter(routeHandlers{
		Leads: handlers.NewLeadHandler(
			usecase.NewSubmitLeadUseCase(store, nil, nil, nil),
			usecase.NewListLeadsUseCase(store),
			usecase.NewMarkReachedOutUseCase(store, nil, nil, nil),
			nil, nil,
		),
		Auth:   handlers.NewAuthHandler("admin@test.com", "admin", nil),
		Health: handlers.NewHealthHandler(store, nil, "test"),
	}, []string{"http://localhost:3000"})
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	_, r := testRouter(t)

	cases := []struct {
		method, path, body string
		code               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/leads", "", http.StatusOK},
		{http.MethodPatch, "/leads", `{"id":"1"}`, http.StatusOK},
		{http.MethodPost, "/leads", `{}`, http.StatusBadRequest},
		{http.MethodPost, "/api/leads", `{}`, http.StatusBadRequest},
		{http.MethodPost, "/login", `{"email":"admin@test.com","password":"admin"}`, http.StatusOK},
		{http.MethodDelete, "/leads", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		w := serve(r, tc.method, tc.path, tc.body)
		assert.Equal(t, tc.code, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestIntakeAliasStoresLead(t *testing.T) {
	store, r := testRouter(t)

	body := `{"firstName":"A","lastName":"B","email":"a@b.c","linkedinUrl":"in/a",
		"visaCategories":["O-1"],"resume":{"name":"a.pdf"},"message":"m"}`
	w := serve(r, http.MethodPost, "/api/leads", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":"Lead submitted successfully!"}`, w.Body.String())
	assert.Equal(t, 9, store.Len())
}

func TestPatchWithPaddedIDIsNotFound(t *testing.T) {
	store, r := testRouter(t)

	w := serve(r, http.MethodPatch, "/leads", `{"id":" 1 "}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	leads, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pending", string(leads[0].Status))
}

func TestCORSPreflight(t *testing.T) {
	_, r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/leads", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
