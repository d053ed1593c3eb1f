package widgets

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
)

// DisabledLighten is the lightness ratio applied to the background token for
// disabled buttons.
const DisabledLighten = 1.1

// FlatButtonProps configures a FlatButton.
type FlatButtonProps struct {
	Label     string
	Primary   bool
	Href      string
	Disabled  bool
	FullWidth bool
	// Type is the button type attribute; defaults to "button".
	Type  string
	Name  string
	Value string
	Attrs []templates.Attr
}

// FlatButtonColors are the resolved colors of a FlatButton.
type FlatButtonColors struct {
	Text               string
	HoverBackground    string
	DisabledBackground string
}

// ResolveFlatButtonColors maps theme tokens to button colors.
func ResolveFlatButtonColors(tokens *theme.Theme, primary bool) FlatButtonColors {
	if tokens == nil {
		tokens = theme.Default()
	}
	colors := FlatButtonColors{
		Text:               tokens.Palette.TextPrimary,
		HoverBackground:    tokens.Palette.Neutral,
		DisabledBackground: theme.Lighten(tokens.Palette.Background, DisabledLighten),
	}
	if primary {
		colors.Text = tokens.Palette.Primary
	}
	return colors
}

// FlatButton renders a transparent text button. It renders a link when Href
// is set and the button is enabled.
func FlatButton(tokens *theme.Theme, props FlatButtonProps) templ.Component {
	colors := ResolveFlatButtonColors(tokens, props.Primary)
	wrapperStyle := templates.Styles("display:inline-block", "width:auto", "margin:3px")
	if props.FullWidth {
		wrapperStyle = templates.Styles("display:block", "width:100%", "margin:3px")
	}
	buttonStyle := templates.Styles(
		"--flat-text:"+colors.Text,
		"--flat-hover:"+colors.HoverBackground,
		"--flat-disabled:"+colors.DisabledBackground,
	)
	classes := templates.Classes("flat-button", primaryClass(props.Primary))

	var control templ.Component
	if strings.TrimSpace(props.Href) != "" && !props.Disabled {
		attrs := append([]templates.Attr{
			templates.A("class", classes),
			templates.A("style", buttonStyle),
			templates.A("href", props.Href),
		}, props.Attrs...)
		control = templates.Element("a", attrs, templates.Text(props.Label))
	} else {
		buttonType := strings.TrimSpace(props.Type)
		if buttonType == "" {
			buttonType = "button"
		}
		attrs := []templates.Attr{
			templates.A("class", classes),
			templates.A("style", buttonStyle),
			templates.A("type", buttonType),
			templates.Flag("disabled", props.Disabled),
		}
		if props.Name != "" {
			attrs = append(attrs, templates.A("name", props.Name), templates.A("value", props.Value))
		}
		attrs = append(attrs, props.Attrs...)
		control = templates.Element("button", attrs, templates.Text(props.Label))
	}
	return templates.Element("div", []templates.Attr{
		templates.A("class", "flat-button-wrapper"),
		templates.A("style", wrapperStyle),
	}, control)
}

func primaryClass(primary bool) string {
	if primary {
		return "flat-button--primary"
	}
	return ""
}
