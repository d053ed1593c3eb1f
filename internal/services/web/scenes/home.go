package scenes

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/store"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
	"github.com/unkso/titan/internal/services/web/widgets"
)

// HomeTitleKey is the page title of the home scene.
const HomeTitleKey = "web.home.title"

// Home greets the viewer and lists the top-level organizations.
func Home(roster store.Store, tokens *theme.Theme) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		page := templates.PageFrom(ctx)
		state := roster.GetState()

		items := make([]templ.Component, 0, len(state.Organizations))
		for _, org := range state.Children(0) {
			items = append(items, templates.Element("li", nil,
				widgets.RouteLink(routepath.RosterOrganization(org.Slug, false), templates.Text(org.Name)),
			))
		}
		return templates.Element("section", []templates.Attr{templates.A("class", "scene-home")},
			templates.Element("h2", []templates.Attr{templates.A("style", "color:"+tokens.Palette.TextPrimary)},
				templates.Text(templates.T(page.Loc, "web.home.heading", page.Viewer.Username))),
			templates.Element("p", []templates.Attr{templates.A("style", "color:"+tokens.Palette.TextSecondary)},
				templates.Text(templates.T(page.Loc, "web.home.summary", len(state.Organizations), len(state.Users)))),
			templates.Element("ul", []templates.Attr{templates.A("class", "organization-list")}, items...),
		).Render(ctx, w)
	})
}
