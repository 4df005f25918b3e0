package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/celerix-dev/flowclient/internal/client/identity"
	"github.com/celerix-dev/flowclient/internal/client/models"
	"github.com/celerix-dev/flowclient/internal/client/routes"
	"github.com/celerix-dev/flowclient/internal/client/schema"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// WhoAmI prints the client id, the backend persona and local preferences.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.identity.ClientID(ctx)
	if err != nil {
		return err
	}
	persona := a.identity.FetchPersona(ctx)
	prefs := a.user.Preferences()

	s := a.styles()
	a.println(s.Title.Render("Client"))
	a.println("  id:       ", id)
	a.println("  persona:  ", persona.Persona)
	if persona.Name != "" {
		a.println("  name:     ", persona.Name)
	}
	if persona.RecoveryCode != "" {
		a.println("  recovery: ", persona.RecoveryCode)
	}
	a.println("  nickname: ", a.user.DisplayName())
	a.println("  theme:    ", fmt.Sprintf("%s (%s, %s)", prefs.Theme, a.presenter.Scheme(), a.presenter.Source()))
	return nil
}

// SetName renames the persona. The backend may issue a new client id and a
// recovery code, both of which are shown.
func (a *App) SetName(ctx context.Context, name string) error {
	res := a.identity.UpdateClientName(ctx, name)
	if !res.Success {
		return errors.New("name update failed")
	}

	s := a.styles()
	a.println(s.Success.Render("Name updated."))
	if res.ID != "" {
		a.println("Client id is now", res.ID)
	}
	if res.RecoveryCode != "" {
		a.println(s.Warning.Render("Recovery code: " + res.RecoveryCode + " (keep it somewhere safe)"))
	}
	return nil
}

func (a *App) Admin(ctx context.Context, secret string) error {
	res := a.identity.ActivateAdmin(ctx, secret)
	if !res.Success {
		return errors.New(res.Error)
	}
	a.println(a.styles().Success.Render("Admin mode activated."))
	return nil
}

// Recover adopts the persona a recovery code belongs to, replacing the
// local client id.
func (a *App) Recover(ctx context.Context, code string) error {
	res := a.identity.RecoverPersona(ctx, code)
	if !res.Success {
		return errors.New("recovery failed")
	}
	a.println(a.styles().Success.Render(fmt.Sprintf("Recovered %s persona %q.", res.Persona, res.Name)))
	return nil
}

func (a *App) Nickname(ctx context.Context, nickname string) error {
	a.user.SetNickname(ctx, nickname)
	a.println("Nickname set to", a.user.DisplayName())
	return nil
}

// Project selects the active project; "-" clears the selection.
func (a *App) Project(ctx context.Context, id string) error {
	if id == "-" {
		a.user.SetActiveProject(ctx, "")
		a.println("Active project cleared")
		return nil
	}
	a.user.SetActiveProject(ctx, id)
	a.println("Active project set to", id)
	return nil
}

func (a *App) Theme(ctx context.Context, name string) error {
	t, err := models.ParseTheme(name)
	if err != nil {
		return err
	}
	if err := a.user.SetTheme(ctx, t); err != nil {
		return err
	}
	a.println(a.styles().Success.Render(fmt.Sprintf("Theme %s (showing %s)", t, a.presenter.Scheme())))
	return nil
}

func (a *App) Routes(context.Context) error {
	var walk func(rs []routes.Route, depth int)
	walk = func(rs []routes.Route, depth int) {
		for _, r := range rs {
			a.println(fmt.Sprintf("%s%-14s %-16s %s", strings.Repeat("  ", depth), r.Path, r.Name, r.View))
			walk(r.Children, depth+1)
		}
	}
	walk(a.routes, 0)
	return nil
}

func (a *App) Get(ctx context.Context, key string) error {
	raw, err := a.store.Load(ctx, key)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

func (a *App) printJSON(raw json.RawMessage) {
	if raw == nil {
		a.println(a.styles().Muted.Render("(no data)"))
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		a.println(string(raw))
		return
	}
	a.println(buf.String())
}

func (a *App) Put(ctx context.Context, key, value string) error {
	if !json.Valid([]byte(value)) {
		return errors.New("value is not valid JSON")
	}
	if err := a.store.Save(ctx, key, json.RawMessage(value)); err != nil {
		return err
	}
	a.println(a.styles().Success.Render("Saved " + key))
	return nil
}

// Validate checks value against the projects or kanban shape.
// Validate checks value against a bundled descriptor. "projects" and
// "kanban" are short for the top-level data descriptors.
func (a *App) Validate(_ context.Context, kind, value string) error {
	name := kind
	switch kind {
	case "projects":
		name = "projects-data"
	case "kanban":
		name = "kanban-data"
	}
	d, ok := schema.Lookup(name)
	if !ok {
		names := schema.Names()
		slices.Sort(names)
		return usageError("validate <projects|kanban|" + strings.Join(names, "|") + "> <json>")
	}

	res := schema.ValidateJSON([]byte(value), d)
	s := a.styles()
	if res.Valid {
		a.println(s.Success.Render("valid"))
		return nil
	}
	a.println(s.Error.Render("invalid"))
	for _, e := range res.Errors {
		a.println("  -", e)
	}
	return nil
}

func (a *App) Kanban(ctx context.Context) error {
	cols, err := a.kanban.Load(ctx)
	if err != nil {
		return err
	}
	a.printKanban(cols)
	return nil
}

func (a *App) printKanban(cols []models.KanbanColumn) {
	s := a.styles()
	if len(cols) == 0 {
		a.println(s.Muted.Render("(empty board)"))
		return
	}
	for _, col := range cols {
		a.println(s.Title.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))))
		for _, card := range col.Cards {
			line := "  • " + card.Title
			if card.Assignee != "" {
				line += s.Muted.Render(" @" + card.Assignee)
			}
			a.println(line)
		}
	}
}

func (a *App) Projects(ctx context.Context) error {
	projects, err := a.projects.Load(ctx)
	if err != nil {
		return err
	}
	a.printProjects(projects)
	return nil
}

func (a *App) printProjects(projects []models.Project) {
	s := a.styles()
	if len(projects) == 0 {
		a.println(s.Muted.Render("(no projects)"))
		return
	}
	active := a.user.Preferences().ActiveProjectID
	for _, p := range projects {
		marker := "  "
		if active != nil && *active == p.ID {
			marker = "* "
		}
		a.println(fmt.Sprintf("%s%s  %s", marker, p.ID, p.Name))
	}
}

// Local lists what is kept in client-local storage.
func (a *App) Local(ctx context.Context) error {
	entries, err := a.local.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.println(a.styles().Muted.Render("(empty)"))
		return nil
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		a.println(fmt.Sprintf("%-20s %s", k, entries[k]))
	}
	return nil
}

// Forget deletes the stored client id, or with all set every local entry.
// The next request runs under a freshly generated id; the old persona is
// reachable only through its recovery code.
func (a *App) Forget(ctx context.Context, all bool) error {
	if all {
		if err := a.local.Clear(ctx); err != nil {
			return err
		}
		a.println(a.styles().Warning.Render("Local storage cleared."))
		return nil
	}
	if err := a.local.Delete(ctx, identity.ClientIDKey); err != nil {
		return err
	}
	a.println(a.styles().Warning.Render("Client id forgotten."))
	return nil
}
