package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/celerix-dev/flowclient/internal/client/routes"
	"github.com/celerix-dev/flowclient/internal/client/theme"
	"github.com/celerix-dev/flowclient/internal/common"
)

// Open resolves path through the route table and renders the matched view
// inside its layouts. A target without a leading slash is a route name.
func (a *App) Open(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		r, ok := routes.ByName(a.routes, path)
		if !ok {
			return fmt.Errorf("no route named %s", path)
		}
		path = r.Path
	}

	chain, ok := routes.Resolve(a.routes, path)
	if !ok {
		return fmt.Errorf("no route for %s", path)
	}

	a.doc.Reset()
	for _, r := range chain {
		a.mount(r.View)
	}
	a.presenter.UpdateTheme()

	for _, r := range chain {
		if err := a.renderView(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// mount adds the themed elements a view owns to the document.
func (a *App) mount(v routes.View) {
	if v != routes.ViewHome {
		return
	}
	scene := theme.NewElement("scene")
	scene.SetAttr(theme.AttrVariant, theme.VariantImageLightDark)
	logo := theme.NewElement("logo", theme.ClassReactLightDark)
	a.doc.Append(scene, logo)
}

func (a *App) renderView(ctx context.Context, r routes.Route) error {
	s := a.styles()

	switch r.View {
	case routes.ViewHome:
		a.println(s.Box.Render(s.Title.Render("Celerix Flow") + "  " + s.Muted.Render(a.user.DisplayName())))
		for _, el := range a.doc.Elements() {
			if src, ok := el.Attr("src"); ok {
				a.println(s.Muted.Render("scene:  " + src))
			}
			if f := el.Style("filter"); f != "" {
				a.println(s.Muted.Render("logo:   " + f))
			}
		}
		return nil

	case routes.ViewDashboard:
		a.println(s.Title.Render("Dashboard"))
		a.println("Hello,", a.user.DisplayName())
		projects, err := a.projects.Load(ctx)
		if err != nil {
			return err
		}
		cols, err := a.kanban.Load(ctx)
		if err != nil {
			return err
		}
		cards := 0
		for _, c := range cols {
			cards += len(c.Cards)
		}
		a.println(fmt.Sprintf("%d projects, %d columns, %d cards", len(projects), len(cols), cards))
		return nil

	case routes.ViewProfile:
		a.println(s.Title.Render("Profile"))
		return a.WhoAmI(ctx)

	case routes.ViewSettings:
		prefs := a.user.Preferences()
		a.println(s.Title.Render("Settings"))
		a.println("  theme:     ", prefs.Theme)
		a.println("  showing:   ", a.presenter.Scheme())
		a.println("  source:    ", a.presenter.Source())
		a.println("  os dark:   ", a.scheme.PrefersDark())
		return nil

	case routes.ViewDataViewer:
		a.println(s.Title.Render("Data"))
		for _, key := range []string{common.KeyUser, common.KeyProjects, common.KeyKanban} {
			raw, err := a.store.Load(ctx, key)
			if err != nil {
				return err
			}
			a.println(s.Prompt.Render(key))
			a.printJSON(raw)
		}
		return nil

	case routes.ViewKanban:
		a.println(s.Title.Render("Kanban"))
		return a.Kanban(ctx)

	case routes.ViewProjects:
		a.println(s.Title.Render("Projects"))
		return a.Projects(ctx)
	}

	return fmt.Errorf("view %s cannot be rendered here", r.View)
}
