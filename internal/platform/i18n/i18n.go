// Package i18n owns the supported language set and the message printers
// built from the embedded catalogs.
package i18n

import (
	"strings"
	"sync"

	"github.com/unkso/titan/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textcatalog "golang.org/x/text/message/catalog"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var (
	loadOnce sync.Once
	loaded   textcatalog.Catalog
	loadErr  error
)

// SupportedTags returns the supported language tags in preference order.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it maps to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	for _, candidate := range supported {
		if candidate == tag {
			return candidate, true
		}
	}
	base, _ := tag.Base()
	for _, candidate := range supported {
		if candidateBase, _ := candidate.Base(); candidateBase == base {
			return candidate, true
		}
	}
	return language.Tag{}, false
}

// MatchTags picks the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[idx]
}

// Catalog returns the process-wide catalog built from the embedded files.
func Catalog() (textcatalog.Catalog, error) {
	loadOnce.Do(func() {
		bundle, err := catalog.LoadEmbedded()
		if err != nil {
			loadErr = err
			return
		}
		loaded, loadErr = bundle.Catalog()
	})
	return loaded, loadErr
}

// Printer returns a message printer for tag. A broken catalog degrades to
// printing message keys.
func Printer(tag language.Tag) *message.Printer {
	cat, err := Catalog()
	if err != nil || cat == nil {
		return message.NewPrinter(tag)
	}
	return message.NewPrinter(tag, message.Catalog(cat))
}
