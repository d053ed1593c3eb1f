// Package templates holds the markup primitives and page chrome shared by
// layouts, scenes and widgets.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Attr is one HTML attribute. Bare attributes render without a value.
type Attr struct {
	Key   string
	Value string
	Bare  bool
}

// A builds a valued attribute.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Flag builds a bare attribute when on is true.
func Flag(key string, on bool) Attr {
	if !on {
		return Attr{}
	}
	return Attr{Key: key, Bare: true}
}

var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "link": true, "meta": true,
}

// Element renders <tag attrs...>children</tag>. Nil children are skipped.
func Element(tag string, attrs []Attr, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<")
		b.WriteString(tag)
		for _, attr := range attrs {
			key := strings.TrimSpace(attr.Key)
			if key == "" {
				continue
			}
			b.WriteString(" ")
			b.WriteString(key)
			if attr.Bare {
				continue
			}
			b.WriteString(`="`)
			b.WriteString(templ.EscapeString(attr.Value))
			b.WriteString(`"`)
		}
		b.WriteString(">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if voidElements[tag] {
			return nil
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Text renders escaped text.
func Text(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(value))
		return err
	})
}

// Fragment renders children in order.
func Fragment(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Empty renders nothing.
func Empty() templ.Component {
	return templ.NopComponent
}

// Styles joins CSS declarations, skipping blanks.
func Styles(declarations ...string) string {
	parts := make([]string, 0, len(declarations))
	for _, declaration := range declarations {
		declaration = strings.TrimSpace(declaration)
		if declaration == "" {
			continue
		}
		parts = append(parts, strings.TrimSuffix(declaration, ";"))
	}
	return strings.Join(parts, ";")
}

// Classes joins class names, skipping blanks.
func Classes(names ...string) string {
	return strings.Join(strings.Fields(strings.Join(names, " ")), " ")
}
