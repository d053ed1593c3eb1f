package scenes

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/store"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
	"github.com/unkso/titan/internal/services/web/widgets"
)

// ProfileTitleKey is the page title of the member profile scene.
const ProfileTitleKey = "web.profile.title"

// Profile renders one member with their organizations and event excuses.
func Profile(roster store.Store, tokens *theme.Theme) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		page := templates.PageFrom(ctx)
		state := roster.GetState()
		raw := strings.TrimSpace(page.Query.Get(routepath.UserParam))
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("member %q: %w", raw, storage.ErrNotFound)
		}
		user, ok := state.Users[userID]
		if !ok {
			return fmt.Errorf("member %d: %w", userID, storage.ErrNotFound)
		}

		orgLinks := make([]templ.Component, 0)
		for _, org := range state.OrganizationsOf(user.ID) {
			orgLinks = append(orgLinks, templates.Element("li", nil,
				widgets.RouteLink(routepath.RosterOrganization(org.Slug, false), templates.Text(org.Name))))
		}

		var excuses templ.Component
		if items := state.Excuses[user.ID]; len(items) > 0 {
			excuses = widgets.EventExcuseList(tokens, items)
		} else {
			excuses = templates.Element("p", []templates.Attr{templates.A("class", "excuse-empty")},
				templates.Text(templates.T(page.Loc, "web.profile.no_excuses")))
		}

		return templates.Element("section", []templates.Attr{
			templates.A("class", "scene-profile"),
			templates.A("data-user-id", strconv.FormatInt(user.ID, 10)),
		},
			templates.Element("h2", nil,
				widgets.MemberNameTag(tokens, user.Profile.AvatarURL, templates.Text(user.Username), widgets.TagLarge)),
			templates.Element("p", []templates.Attr{templates.A("style", "color:"+tokens.Palette.TextSecondary)},
				templates.Text(templates.T(page.Loc, "web.profile.joined", user.DateJoined.UTC().Format(widgets.DateLayout)))),
			templates.Element("ul", []templates.Attr{templates.A("class", "organization-list")}, orgLinks...),
			templates.Element("h3", nil, templates.Text(templates.T(page.Loc, "web.profile.excuses"))),
			excuses,
		).Render(ctx, w)
	})
}
