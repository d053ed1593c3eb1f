package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/platform/branding"
	"github.com/unkso/titan/internal/services/web/theme"
)

// HTMXScriptURL is the pinned HTMX build loaded by every full page.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// ComposePageTitle appends the product name to a page title.
func ComposePageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return branding.AppName
	}
	return title + " | " + branding.AppName
}

// Document renders the full HTML document around body.
func Document(page PageContext, title string, body templ.Component) templ.Component {
	lang := strings.TrimSpace(page.Lang)
	if lang == "" {
		lang = "en-US"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		tokens := page.Theme
		if tokens == nil {
			tokens = theme.Default()
		}
		head := Element("head", nil,
			Element("meta", []Attr{A("charset", "utf-8")}),
			Element("meta", []Attr{A("name", "viewport"), A("content", "width=device-width, initial-scale=1")}),
			Element("title", nil, Text(ComposePageTitle(title))),
			Element("link", []Attr{A("rel", "stylesheet"), A("href", "/static/site.css")}),
			Element("style", nil, templ.Raw(tokens.CSSVariables())),
			Element("script", []Attr{A("src", HTMXScriptURL), Flag("defer", true)}),
		)
		main := Element("body", []Attr{A("hx-boost", "true")},
			Notice(page.Notice),
			Element("div", []Attr{A("id", "main")}, body),
		)
		return Element("html", []Attr{A("lang", lang)}, head, main).Render(ctx, w)
	})
}

// TitleTag renders the title element HTMX picks up from fragment responses.
func TitleTag(title string) templ.Component {
	return Element("title", nil, Text(ComposePageTitle(title)))
}

// Notice renders a one-time status message, or nothing when message is blank.
func Notice(message string) templ.Component {
	message = strings.TrimSpace(message)
	if message == "" {
		return Empty()
	}
	return Element("div", []Attr{A("class", "notice"), A("role", "status")}, Text(message))
}
