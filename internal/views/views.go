package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/pkg/route"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"money":    Money,
	"datetime": DateTime,
	"clock":    Clock,
	"category": Category,
	"inc":      func(i int) int { return i + 1 },
}

var templates = template.Must(template.New("views").Funcs(funcs).ParseFS(files, "templates/*.html"))

// component exposes a named template as a templ component.
func component(name string, data any) templ.Component {
	t := templates.Lookup(name)
	if t == nil {
		panic("views: unknown template " + name)
	}
	return templ.FromGoHTML(t, data)
}

// NavItem is an entry of the private shell navigation.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

var navigation = []NavItem{
	{Label: "Buscar Vuelos", Href: "/search"},
	{Label: "Mis Viajes", Href: "/bookings"},
	{Label: "Mi Perfil", Href: "/profile"},
}

// Nav marks the entries whose path prefixes the matched route pattern.
func Nav(pattern string) []NavItem {
	items := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Active = pattern != "" && strings.HasPrefix(pattern, item.Href)
		items[i] = item
	}
	return items
}

type layoutData struct {
	internal.Frame
	Content  template.HTML
	Nav      []NavItem
	UserName string
	Private  bool
}

// Layout wraps a page body in the public or private shell.
func Layout(f internal.Frame) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content, err := templ.ToGoHTML(ctx, f.Body)
		if err != nil {
			return err
		}
		data := layoutData{
			Frame:    f,
			Content:  content,
			Nav:      Nav(f.Pattern),
			UserName: "Usuario",
			Private:  f.Shell == route.PrivateShell,
		}
		if f.User != nil && f.User.FullName != "" {
			data.UserName = f.User.FullName
		}
		return component("layout", data).Render(ctx, w)
	})
}

var _ internal.Layout = Layout
