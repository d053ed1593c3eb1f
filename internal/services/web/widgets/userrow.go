package widgets

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
)

const (
	rowMoreKey   = "web.roster.more"
	rowRemoveKey = "web.roster.remove"
)

// RemoveUserField is the form field carrying the member id on removal.
const RemoveUserField = "user"

// MenuState is the open flag of one row's action menu. It belongs to a
// single row and is not shared.
type MenuState struct {
	open bool
}

// Open opens the menu.
func (m *MenuState) Open() {
	if m != nil {
		m.open = true
	}
}

// Close closes the menu.
func (m *MenuState) Close() {
	if m != nil {
		m.open = false
	}
}

// Toggle flips the menu.
func (m *MenuState) Toggle() {
	if m != nil {
		m.open = !m.open
	}
}

// IsOpen reports whether the menu is open.
func (m *MenuState) IsOpen() bool {
	return m != nil && m.open
}

// UserRowProps configures a UserRow. The action menu is rendered only when
// OnRemove is set.
type UserRowProps struct {
	User         storage.User
	ProfileHref  string
	RemoveAction string
	OnRemove     func(storage.User)
}

// RemoveUser closes the menu and hands the row's member to OnRemove. It
// reports whether a callback ran.
func RemoveUser(props UserRowProps, menu *MenuState) bool {
	menu.Close()
	if props.OnRemove == nil {
		return false
	}
	props.OnRemove(props.User)
	return true
}

// UserRow renders one member table row: name tag, last activity, join date
// and the optional action menu.
func UserRow(tokens *theme.Theme, props UserRowProps, menu *MenuState) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	user := props.User
	username := templates.Text(user.Username)
	if props.ProfileHref != "" {
		username = RouteLink(props.ProfileHref, templates.Text(user.Username))
	}
	cell := func(width string, align string, children ...templ.Component) templ.Component {
		return templates.Element("td", []templates.Attr{
			templates.A("style", templates.Styles("width:"+width, "text-align:"+align, "padding:"+tokens.Space(1))),
		}, children...)
	}
	return templates.Element("tr", []templates.Attr{
		templates.A("class", "user-row"),
		templates.A("data-user-id", strconv.FormatInt(user.ID, 10)),
	},
		cell("40%", "left", MemberNameTag(tokens, user.Profile.AvatarURL, username, TagSmall)),
		cell("25%", "left", templates.Text(formatDate(user.Profile.LastActivityTime))),
		cell("25%", "left", templates.Text(formatDate(user.DateJoined))),
		cell("10%", "right", rowMenu(tokens, props, menu)),
	)
}

func rowMenu(tokens *theme.Theme, props UserRowProps, menu *MenuState) templ.Component {
	if props.OnRemove == nil {
		return templates.Empty()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := templates.PageFrom(ctx).Loc
		userID := strconv.FormatInt(props.User.ID, 10)
		form := templates.Element("form", []templates.Attr{
			templates.A("method", "post"),
			templates.A("action", props.RemoveAction),
			templates.A("hx-post", props.RemoveAction),
			templates.A("class", "row-menu-items"),
			templates.A("role", "menu"),
		},
			templates.Element("input", []templates.Attr{
				templates.A("type", "hidden"),
				templates.A("name", RemoveUserField),
				templates.A("value", userID),
			}),
			FlatButton(tokens, FlatButtonProps{
				Label:     templates.T(loc, rowRemoveKey),
				Type:      "submit",
				FullWidth: true,
				Attrs:     []templates.Attr{templates.A("role", "menuitem")},
			}),
		)
		return templates.Element("details", []templates.Attr{
			templates.A("class", "row-menu"),
			templates.Flag("open", menu.IsOpen()),
		},
			templates.Element("summary", []templates.Attr{
				templates.A("class", "row-menu-trigger"),
				templates.A("aria-label", templates.T(loc, rowMoreKey)),
				templates.A("aria-haspopup", "true"),
			}, templates.Text("⋮")),
			form,
		).Render(ctx, w)
	})
}
