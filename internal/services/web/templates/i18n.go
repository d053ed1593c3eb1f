package templates

import (
	"sync"

	platformi18n "github.com/unkso/titan/internal/platform/i18n"
	"golang.org/x/text/message"
)

// Localizer translates roster copy for the viewer's language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// defaultLocalizer renders copy for components rendered outside a request,
// such as previews and fragments built by actions.
var defaultLocalizer = sync.OnceValue(func() Localizer {
	return platformi18n.Printer(platformi18n.DefaultTag())
})

// T returns the translated string for key. Without a localizer it falls back
// to the default language; keys missing from the catalog are formatted as is.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		loc = defaultLocalizer()
	}
	return loc.Sprintf(key, args...)
}
