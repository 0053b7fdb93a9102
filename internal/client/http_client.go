// Package client talks to the lead service and keeps the dashboard state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

// LeadAPI is the part of the lead service the dashboard state depends on.
type LeadAPI interface {
	ListLeads(ctx context.Context) ([]entity.Lead, error)
	MarkReachedOut(ctx context.Context, id string) error
	SubmitLead(ctx context.Context, input usecase.SubmitLeadInput) error
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) error
}

var (
	_ LeadAPI       = (*HTTPClient)(nil)
	_ Authenticator = (*HTTPClient)(nil)
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	var leads []entity.Lead
	if err := c.do(ctx, http.MethodGet, "/leads", nil, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}

func (c *HTTPClient) MarkReachedOut(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/leads", usecase.MarkReachedOutInput{ID: id}, nil)
}

func (c *HTTPClient) SubmitLead(ctx context.Context, input usecase.SubmitLeadInput) error {
	return c.do(ctx, http.MethodPost, "/leads", input, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/login", body, nil)
}

// serviceError covers both error shapes the service answers with.
type serviceError struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Method: method, Code: resp.StatusCode}
		var se serviceError
		if json.Unmarshal(raw, &se) == nil {
			statusErr.Message = se.Error
			if statusErr.Message == "" {
				statusErr.Message = se.Message
			}
			statusErr.Fields = se.Fields
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
