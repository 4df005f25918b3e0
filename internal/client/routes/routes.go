// Package routes is the client's static route table: which view renders
// each path.
package routes

import "strings"

// View names the component a route renders.
type View string

const (
	ViewHome       View = "HomeView"
	ViewDashboard  View = "Dashboard"
	ViewProfile    View = "ProfileView"
	ViewSettings   View = "SettingsView"
	ViewDataViewer View = "DataViewer"
	ViewKanban     View = "KanbanView"
	ViewProjects   View = "ProjectsView"
)

type Route struct {
	Path     string
	Name     string
	View     View
	Children []Route
}

// BasicRoutes returns the application routes. Every page renders inside the
// home layout.
func BasicRoutes() []Route {
	return []Route{
		{
			Path: "/",
			Name: "home",
			View: ViewHome,
			Children: []Route{
				{Path: "/", Name: "dashboard", View: ViewDashboard},
				{Path: "/profile", Name: "profile", View: ViewProfile},
				{Path: "/settings", Name: "settings", View: ViewSettings},
				{Path: "/data-viewer", Name: "data-viewer", View: ViewDataViewer},
				{Path: "/kanban", Name: "kanban", View: ViewKanban},
				{Path: "/projects", Name: "projects", View: ViewProjects},
			},
		},
	}
}

// Resolve finds the route for path. Children are tried before their parent,
// so "/" resolves to the dashboard inside home. The returned chain runs from
// the outermost layout to the matched route.
func Resolve(routes []Route, path string) ([]Route, bool) {
	path = normalize(path)
	for _, r := range routes {
		if chain, ok := Resolve(r.Children, path); ok {
			return append([]Route{r}, chain...), true
		}
		if normalize(r.Path) == path {
			return []Route{r}, true
		}
	}
	return nil, false
}

// ByName finds a route anywhere in the tree.
func ByName(routes []Route, name string) (Route, bool) {
	for _, r := range Flatten(routes) {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Flatten lists every route depth-first, parents before children.
func Flatten(routes []Route) []Route {
	var out []Route
	for _, r := range routes {
		out = append(out, r)
		out = append(out, Flatten(r.Children)...)
	}
	return out
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path
}
