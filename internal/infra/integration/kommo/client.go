// Package kommo forwards new leads to a Kommo-compatible CRM over its v4
// REST API.
package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/lead-intake/internal/infra/queue"
)

var (
	ErrNotConfigured   = errors.New("crm not configured")
	errContactNotFound = errors.New("contact not found")
)

type Client struct {
	apiToken   string
	baseURL    string
	statusID   int
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPipelineStatus places created leads in a specific pipeline stage.
func WithPipelineStatus(statusID int) Option {
	return func(c *Client) { c.statusID = statusID }
}

func NewClient(apiToken, baseURL string, opts ...Option) *Client {
	c := &Client{
		apiToken:   apiToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ForwardLead finds or creates the contact by email and opens a CRM lead
// tagged with the visa categories. It returns the CRM lead id.
func (c *Client) ForwardLead(ctx context.Context, event queue.LeadEvent) (int, error) {
	if c.apiToken == "" || c.baseURL == "" {
		return 0, ErrNotConfigured
	}

	contactID, err := c.findOrCreateContact(ctx, event)
	if err != nil {
		return 0, fmt.Errorf("find or create contact: %w", err)
	}

	tags := []tag{{Name: "intake_form"}}
	for _, v := range event.Visas {
		tags = append(tags, tag{Name: v})
	}

	payload := []leadRequest{{
		Name:     fmt.Sprintf("%s %s - %s", event.FirstName, event.LastName, strings.Join(event.Visas, "/")),
		StatusID: c.statusID,
		Embedded: leadEmbedded{
			Tags:     tags,
			Contacts: []embeddedRef{{ID: contactID}},
		},
	}}

	var result listResponse
	if err := c.do(ctx, http.MethodPost, "/leads", payload, &result); err != nil {
		return 0, fmt.Errorf("create lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, errors.New("create lead: empty response")
	}
	return result.Embedded.Leads[0].ID, nil
}

func (c *Client) findOrCreateContact(ctx context.Context, event queue.LeadEvent) (int, error) {
	id, err := c.findContactByEmail(ctx, event.Email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, errContactNotFound) {
		return 0, err
	}
	return c.createContact(ctx, event)
}

func (c *Client) findContactByEmail(ctx context.Context, email string) (int, error) {
	var result listResponse
	path := "/contacts?query=" + url.QueryEscape(email)

	err := c.do(ctx, http.MethodGet, path, nil, &result)
	if errors.Is(err, errNoContent) {
		return 0, errContactNotFound
	}
	if err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errContactNotFound
	}
	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, event queue.LeadEvent) (int, error) {
	payload := []contactRequest{{
		Name:      strings.TrimSpace(event.FirstName + " " + event.LastName),
		FirstName: event.FirstName,
		LastName:  event.LastName,
		CustomFields: []customField{
			{FieldCode: "EMAIL", Values: []customFieldValue{{Value: event.Email, EnumCode: "WORK"}}},
		},
	}}

	var result listResponse
	if err := c.do(ctx, http.MethodPost, "/contacts", payload, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errors.New("create contact: empty response")
	}
	return result.Embedded.Contacts[0].ID, nil
}

// Kommo answers searches without hits with 204 and no body.
var errNoContent = errors.New("no content")

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return errNoContent
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
