// Package dashboard is the terminal front end for reviewing leads: a small
// REPL over the client state container.
package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/xavierca1/lead-intake/internal/client"
	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/query"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type App struct {
	state   *client.State
	session *client.Session
	auth    client.Authenticator
	out     io.Writer

	readFile func(name string) ([]byte, error)
}

func NewApp(api client.LeadAPI, auth client.Authenticator, out io.Writer) *App {
	return &App{
		state:    client.NewState(api),
		session:  &client.Session{},
		auth:     auth,
		out:      out,
		readFile: os.ReadFile,
	}
}

func (a *App) LoggedIn() bool {
	return a.session.LoggedIn()
}

// Login authenticates and loads the list on success.
func (a *App) Login(ctx context.Context, email, password string) error {
	if err := a.session.Login(ctx, a.auth, email, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid email or password")
		}
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", email)
	return a.refresh(ctx)
}

// Run reads commands from in until EOF or exit.
func (a *App) Run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(a.out, "leads %s> ", a.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return
		}
		if err := a.exec(ctx, cmd, args); err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}
	}
}

func (a *App) prompt() string {
	if !a.session.LoggedIn() {
		return "(logged out)"
	}
	p := a.state.Snapshot().Params
	return fmt.Sprintf("(%s %s)", p.SortBy, p.SortOrder)
}

func (a *App) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.help()
		return nil
	case "login":
		if len(args) != 2 {
			return errors.New("usage: login <email> <password>")
		}
		return a.Login(ctx, args[0], args[1])
	}

	if !a.session.LoggedIn() {
		return client.ErrNotLoggedIn
	}

	switch cmd {
	case "logout":
		a.session.Logout()
		fmt.Fprintln(a.out, "logged out")
	case "refresh", "fetch":
		return a.refresh(ctx)
	case "list", "ls":
		a.render()
	case "search":
		a.state.SetSearchQuery(strings.Join(args, " "))
		a.render()
	case "filter":
		status, err := parseStatusArg(args)
		if err != nil {
			return err
		}
		a.state.SetStatusFilter(status)
		a.render()
	case "sort":
		if len(args) != 1 {
			return errors.New("usage: sort <column>")
		}
		key, ok := query.ParseSortKey(args[0])
		if !ok {
			return fmt.Errorf("unknown column %q", args[0])
		}
		a.state.ToggleSort(key)
		a.render()
	case "order":
		if len(args) != 1 {
			return errors.New("usage: order asc|desc")
		}
		order, ok := query.ParseOrder(args[0])
		if !ok {
			return fmt.Errorf("unknown order %q", args[0])
		}
		a.state.SetSortOrder(order)
		a.render()
	case "reach":
		if len(args) != 1 {
			return errors.New("usage: reach <id>")
		}
		if err := a.state.MarkReachedOut(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "lead %s marked as %s\n", args[0], entity.StatusReachedOut)
	case "submit":
		if len(args) != 1 {
			return errors.New("usage: submit <file.json>")
		}
		return a.submit(ctx, args[0])
	case "status":
		a.status()
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}

func (a *App) refresh(ctx context.Context) error {
	if err := a.state.FetchLeads(ctx); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) submit(ctx context.Context, path string) error {
	raw, err := a.readFile(path)
	if err != nil {
		return err
	}
	var input usecase.SubmitLeadInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := a.state.Submit(ctx, input); err != nil {
		var se *client.StatusError
		if errors.As(err, &se) && len(se.Fields) > 0 {
			return fmt.Errorf("%s missing: %s", se.Message, strings.Join(se.Fields, ", "))
		}
		return err
	}
	fmt.Fprintln(a.out, "lead submitted")
	return a.refresh(ctx)
}

func (a *App) render() {
	leads := a.state.Visible()

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSUBMITTED\tSTATUS\tCOUNTRY\tVISAS")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
			l.ID, l.FirstName, l.LastName,
			l.CreatedAt.Local().Format("2006-01-02 15:04"),
			l.Status, l.Country, strings.Join(l.VisaCategories, ", "))
	}
	tw.Flush()
	fmt.Fprintf(a.out, "%d lead(s)\n", len(leads))
}

func (a *App) status() {
	snap := a.state.Snapshot()
	filter := string(snap.Params.StatusFilter)
	if filter == "" {
		filter = "all"
	}
	fmt.Fprintf(a.out, "user: %s\nfetch: %s\nsearch: %q\nfilter: %s\nsort: %s %s\n",
		a.session.Email(), snap.Status, snap.Params.SearchQuery, filter,
		snap.Params.SortBy, snap.Params.SortOrder)
	if snap.Err != "" {
		fmt.Fprintf(a.out, "last error: %s\n", snap.Err)
	}
}

func (a *App) help() {
	if !a.session.LoggedIn() {
		fmt.Fprintln(a.out, "Available commands: login <email> <password>, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: list, refresh, search <text>, filter pending|reached|all,")
	fmt.Fprintln(a.out, "  sort <column>, order asc|desc, reach <id>, submit <file.json>, status, logout, exit")
}

func parseStatusArg(args []string) (entity.Status, error) {
	switch strings.ToLower(strings.Join(args, " ")) {
	case "", "all":
		return "", nil
	case "pending":
		return entity.StatusPending, nil
	case "reached", "reached out", "reached-out":
		return entity.StatusReachedOut, nil
	}
	return "", fmt.Errorf("unknown status %q", strings.Join(args, " "))
}
