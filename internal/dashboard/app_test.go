package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-intake/internal/client"
	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/memory"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type fakeService struct {
	leads     []entity.Lead
	submitted []usecase.SubmitLeadInput
}

func (f *fakeService) ListLeads(context.Context) ([]entity.Lead, error) {
	out := make([]entity.Lead, len(f.leads))
	copy(out, f.leads)
	return out, nil
}

func (f *fakeService) MarkReachedOut(_ context.Context, id string) error {
	for i := range f.leads {
		if f.leads[i].ID == id {
			f.leads[i].Status = entity.StatusReachedOut
			return nil
		}
	}
	return &client.StatusError{Method: http.MethodPatch, Code: http.StatusNotFound, Message: "Lead not found"}
}

func (f *fakeService) SubmitLead(_ context.Context, in usecase.SubmitLeadInput) error {
	if in.Message == "" {
		return &client.StatusError{Method: http.MethodPost, Code: http.StatusBadRequest,
			Message: "All fields are required.", Fields: []string{"message"}}
	}
	f.submitted = append(f.submitted, in)
	return nil
}

func (f *fakeService) Login(_ context.Context, email, password string) error {
	if email == "admin@test.com" && password == "admin" {
		return nil
	}
	return &client.StatusError{Method: http.MethodPost, Code: http.StatusUnauthorized}
}

func newApp() (*App, *fakeService, *bytes.Buffer) {
	svc := &fakeService{leads: memory.DemoLeads(time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC))}
	var out bytes.Buffer
	return NewApp(svc, svc, &out), svc, &out
}

func TestCommandsRequireLogin(t *testing.T) {
	app, _, out := newApp()

	app.Run(context.Background(), strings.NewReader("list\nlogin admin@test.com wrong\nexit\n"))

	assert.Contains(t, out.String(), client.ErrNotLoggedIn.Error())
	assert.Contains(t, out.String(), "invalid email or password")
	assert.False(t, app.LoggedIn())
}

func TestLoginFetchesAndRenders(t *testing.T) {
	app, _, out := newApp()

	require.NoError(t, app.Login(context.Background(), "admin@test.com", "admin"))

	assert.True(t, app.LoggedIn())
	assert.Contains(t, out.String(), "Anand Jain")
	assert.Contains(t, out.String(), "8 lead(s)")
	// default sort is first name ascending
	assert.Less(t, strings.Index(out.String(), "Anand"), strings.Index(out.String(), "Mary"))
}

func TestFilterSearchAndReach(t *testing.T) {
	app, svc, out := newApp()
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "admin@test.com", "admin"))

	out.Reset()
	app.Run(ctx, strings.NewReader("filter pending\nsearch zam\nreach 2\nfilter reached\nreach 99\nexit\n"))

	s := out.String()
	assert.Contains(t, s, "Bahar Zamir")
	assert.Contains(t, s, "lead 2 marked as Reached Out")
	assert.Contains(t, s, "Lead not found")
	assert.Equal(t, entity.StatusReachedOut, svc.leads[1].Status)

	visible := app.state.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "2", visible[0].ID)
}

func TestSortToggle(t *testing.T) {
	app, _, _ := newApp()
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "admin@test.com", "admin"))

	require.NoError(t, app.exec(ctx, "sort", []string{"firstName"}))
	assert.Equal(t, "Mary", app.state.Visible()[0].FirstName)

	require.NoError(t, app.exec(ctx, "sort", []string{"country"}))
	assert.Equal(t, "Brazil", app.state.Visible()[0].Country)

	assert.Error(t, app.exec(ctx, "sort", []string{"shoeSize"}))
	assert.Error(t, app.exec(ctx, "order", []string{"sideways"}))
	assert.Error(t, app.exec(ctx, "filter", []string{"maybe"}))
}

func TestSubmitFromFile(t *testing.T) {
	app, svc, out := newApp()
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "admin@test.com", "admin"))

	files := map[string]string{
		"ok.json":  `{"firstName":"A","lastName":"B","email":"a@b.c","linkedinUrl":"in/a","visaCategories":["O-1"],"resume":{"name":"a.pdf"},"message":"hi"}`,
		"bad.json": `{"firstName":"A"}`,
		"broken":   `{`,
	}
	app.readFile = func(name string) ([]byte, error) {
		if s, ok := files[name]; ok {
			return []byte(s), nil
		}
		return nil, errors.New("no such file")
	}

	require.NoError(t, app.exec(ctx, "submit", []string{"ok.json"}))
	require.Len(t, svc.submitted, 1)
	assert.Equal(t, "a.pdf", svc.submitted[0].ResumeName())
	assert.Contains(t, out.String(), "lead submitted")

	err := app.exec(ctx, "submit", []string{"bad.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing: message")

	assert.Error(t, app.exec(ctx, "submit", []string{"broken"}))
	assert.Error(t, app.exec(ctx, "submit", []string{"missing.json"}))
}

func TestStatusAndLogout(t *testing.T) {
	app, _, out := newApp()
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "admin@test.com", "admin"))

	out.Reset()
	app.Run(ctx, strings.NewReader("status\nlogout\nlist\n"))

	s := out.String()
	assert.Contains(t, s, "user: admin@test.com")
	assert.Contains(t, s, "fetch: succeeded")
	assert.Contains(t, s, "logged out")
	assert.Contains(t, s, client.ErrNotLoggedIn.Error())
	assert.False(t, app.LoggedIn())
}
