// Package layouts provides the page chrome that wraps scenes.
package layouts

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/platform/branding"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/routing"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
	"github.com/unkso/titan/internal/services/web/widgets"
)

// NavItem is one sidebar entry. LabelKey is a message key.
type NavItem struct {
	Href     string
	LabelKey string
}

// DefaultNav is the sidebar of the roster layout.
func DefaultNav() []NavItem {
	return []NavItem{
		{Href: routepath.Root, LabelKey: "web.nav.home"},
		{Href: routepath.Roster, LabelKey: "web.nav.roster"},
	}
}

// Roster returns the header and sidebar chrome used by signed-in pages.
func Roster(tokens *theme.Theme, nav []NavItem) routing.Layout {
	if tokens == nil {
		tokens = theme.Default()
	}
	items := append([]NavItem(nil), nav...)
	return func(scene templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			page := templates.PageFrom(ctx)
			return templates.Element("div", []templates.Attr{
				templates.A("class", "layout-roster"),
				templates.A("data-layout", "roster"),
			},
				header(tokens, page),
				templates.Element("div", []templates.Attr{
					templates.A("class", "layout-roster-body"),
					templates.A("style", templates.Styles("display:flex", "gap:"+tokens.Space(2))),
				},
					sidebar(tokens, page, items),
					templates.Element("main", []templates.Attr{
						templates.A("class", "layout-roster-content"),
						templates.A("style", templates.Styles("flex:1", "padding:"+tokens.Space(2))),
					}, scene),
				),
			).Render(ctx, w)
		})
	}
}

func header(tokens *theme.Theme, page templates.PageContext) templ.Component {
	var account templ.Component = templates.Empty()
	if page.Viewer.SignedIn() {
		account = templates.Element("form", []templates.Attr{
			templates.A("method", "post"),
			templates.A("action", routepath.Logout),
			templates.A("class", "layout-account"),
			templates.A("style", templates.Styles("display:flex", "align-items:center", "gap:"+tokens.Space(1))),
		},
			widgets.MemberNameTag(tokens, page.Viewer.AvatarURL, templates.Text(page.Viewer.Username), widgets.TagSmall),
			widgets.FlatButton(tokens, widgets.FlatButtonProps{
				Label: templates.T(page.Loc, "web.nav.sign_out"),
				Type:  "submit",
			}),
		)
	}
	return templates.Element("header", []templates.Attr{
		templates.A("class", "layout-header"),
		templates.A("style", templates.Styles(
			"display:flex",
			"justify-content:space-between",
			"align-items:center",
			"background:"+tokens.Palette.Surface,
			"padding:"+tokens.Space(1)+" "+tokens.Space(2),
		)),
	},
		templates.Element("a", []templates.Attr{
			templates.A("class", "layout-brand"),
			templates.A("href", routepath.Root),
			templates.A("style", "color:"+tokens.Palette.Primary),
		}, templates.Text(branding.OrganizationName+" "+branding.AppName)),
		account,
	)
}

func sidebar(tokens *theme.Theme, page templates.PageContext, nav []NavItem) templ.Component {
	links := make([]templ.Component, 0, len(nav))
	for _, item := range nav {
		links = append(links, templates.Element("li", nil,
			widgets.FlatButton(tokens, widgets.FlatButtonProps{
				Label:     templates.T(page.Loc, item.LabelKey),
				Href:      item.Href,
				Primary:   isActive(page.CurrentPath, item.Href),
				FullWidth: true,
			}),
		))
	}
	return templates.Element("nav", []templates.Attr{
		templates.A("class", "layout-sidebar"),
		templates.A("style", templates.Styles("width:200px", "padding:"+tokens.Space(1))),
	}, templates.Element("ul", nil, links...))
}

func isActive(currentPath, href string) bool {
	if href == routepath.Root {
		return currentPath == routepath.Root
	}
	return currentPath == href || strings.HasPrefix(currentPath, href+"/")
}

// Centered returns a narrow single-column layout for signed-out pages.
func Centered(tokens *theme.Theme) routing.Layout {
	if tokens == nil {
		tokens = theme.Default()
	}
	return func(scene templ.Component) templ.Component {
		return templates.Element("main", []templates.Attr{
			templates.A("class", "layout-centered"),
			templates.A("data-layout", "centered"),
			templates.A("style", templates.Styles(
				"max-width:420px",
				"margin:"+tokens.Space(6)+" auto",
				"padding:"+tokens.Space(3),
				"background:"+tokens.Palette.Surface,
			)),
		},
			templates.Element("h1", []templates.Attr{templates.A("style", "color:"+tokens.Palette.Primary)},
				templates.Text(branding.AppName)),
			scene,
		)
	}
}
