package widgets

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
)

// DefaultAvatarURL is shown for members without an avatar.
const DefaultAvatarURL = "/static/avatar.svg"

// TagSize selects the avatar size of a name tag.
type TagSize string

const (
	TagSmall TagSize = "small"
	TagLarge TagSize = "large"
)

func (s TagSize) pixels() int {
	if s == TagLarge {
		return 64
	}
	return 32
}

// MemberNameTag renders an avatar next to a username component.
func MemberNameTag(tokens *theme.Theme, avatarURL string, username templ.Component, size TagSize) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	if strings.TrimSpace(avatarURL) == "" {
		avatarURL = DefaultAvatarURL
	}
	px := size.pixels()
	return templates.Element("span", []templates.Attr{
		templates.A("class", "member-name-tag member-name-tag--"+string(size)),
		templates.A("style", templates.Styles("display:inline-flex", "align-items:center", "gap:"+tokens.Space(1))),
	},
		templates.Element("img", []templates.Attr{
			templates.A("class", "member-avatar"),
			templates.A("src", avatarURL),
			templates.A("alt", ""),
			templates.A("width", strconv.Itoa(px)),
			templates.A("height", strconv.Itoa(px)),
		}),
		templates.Element("span", []templates.Attr{templates.A("class", "member-username")}, username),
	)
}

// RouteLink renders an in-app link that HTMX swaps into #main.
func RouteLink(href string, label templ.Component) templ.Component {
	return templates.Element("a", []templates.Attr{
		templates.A("href", href),
		templates.A("hx-get", href),
		templates.A("hx-target", "#main"),
		templates.A("hx-push-url", "true"),
	}, label)
}
