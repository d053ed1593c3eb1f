package templates

import (
	"testing"

	platformi18n "github.com/unkso/titan/internal/platform/i18n"
	"golang.org/x/text/language"
)

func TestTFallsBackToDefaultLanguage(t *testing.T) {
	t.Parallel()

	if got := T(nil, "web.roster.remove"); got != "Remove" {
		t.Fatalf("T(nil, remove) = %q, want %q", got, "Remove")
	}
	if got := T(nil, "%d members", 3); got != "3 members" {
		t.Fatalf("T(nil, uncatalogued) = %q", got)
	}
}

func TestTUsesRequestLocalizer(t *testing.T) {
	t.Parallel()

	loc := platformi18n.Printer(language.BrazilianPortuguese)
	if got := T(loc, "web.roster.remove"); got != "Remover" {
		t.Fatalf("T(pt-BR, remove) = %q, want %q", got, "Remover")
	}
}
