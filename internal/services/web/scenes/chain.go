package scenes

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/store"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
	"github.com/unkso/titan/internal/services/web/widgets"
)

// chainOfCommand renders the read-only command roles above and within org,
// followed by its staff roles.
func chainOfCommand(tokens *theme.Theme, loc templates.Localizer, state store.State, org storage.Organization) templ.Component {
	chain := state.ChainOfCommand(org.ID)
	var ranked templ.Component
	if len(chain) == 0 {
		ranked = templates.Element("p", []templates.Attr{
			templates.A("class", "coc-empty"),
			templates.A("style", "color:"+tokens.Palette.TextSecondary),
		}, templates.Text(templates.T(loc, "web.roster.coc_empty")))
	} else {
		items := make([]templ.Component, 0, len(chain))
		for _, role := range chain {
			items = append(items, roleItem(tokens, loc, state, role))
		}
		ranked = templates.Element("ol", []templates.Attr{templates.A("class", "coc-list")}, items...)
	}

	var staff templ.Component = templates.Empty()
	if roles := state.StaffRoles(org.ID); len(roles) > 0 {
		items := make([]templ.Component, 0, len(roles))
		for _, role := range roles {
			items = append(items, roleItem(tokens, loc, state, role))
		}
		staff = templates.Fragment(
			templates.Element("h4", nil, templates.Text(templates.T(loc, "web.roster.staff"))),
			templates.Element("ul", []templates.Attr{templates.A("class", "coc-staff")}, items...),
		)
	}

	return templates.Element("section", []templates.Attr{
		templates.A("class", "roster-coc"),
		templates.A("style", "margin-top:"+tokens.Space(3)),
	},
		templates.Element("h3", []templates.Attr{templates.A("style", "color:"+tokens.Palette.TextPrimary)},
			templates.Text(templates.T(loc, "web.roster.coc"))),
		ranked,
		staff,
	)
}

func roleItem(tokens *theme.Theme, loc templates.Localizer, state store.State, role storage.Role) templ.Component {
	holder := templates.Element("span", []templates.Attr{
		templates.A("class", "coc-vacant"),
		templates.A("style", "color:"+tokens.Palette.TextSecondary),
	}, templates.Text(templates.T(loc, "web.roster.vacant")))
	if user, ok := state.Users[role.UserID]; ok {
		holder = widgets.RouteLink(routepath.Profile(user.ID), templates.Text(user.Username))
	}
	return templates.Element("li", []templates.Attr{
		templates.A("class", "coc-role"),
		templates.A("data-role-id", strconv.FormatInt(role.ID, 10)),
	},
		templates.Element("span", []templates.Attr{templates.A("class", "coc-role-name")}, templates.Text(role.Name)),
		templates.Text(" "),
		holder,
	)
}
