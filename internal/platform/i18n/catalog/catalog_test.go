package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	locales := bundle.Locales()
	if len(locales) != 2 || locales[0] != "en-US" || locales[1] != "pt-BR" {
		t.Fatalf("locales = %v", locales)
	}
	if got, ok := bundle.Message("pt-BR", "web.roster.remove"); !ok || got != "Remover" {
		t.Fatalf("pt-BR remove = %q, %t", got, ok)
	}
	if got, ok := bundle.Message("fr-FR", "web.roster.remove"); !ok || got != "Remove" {
		t.Fatalf("fallback remove = %q, %t", got, ok)
	}
}

func TestCatalogFormatsThroughPrinter(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	cat, err := bundle.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	printer := message.NewPrinter(language.MustParse("pt-BR"), message.Catalog(cat))
	if got := printer.Sprintf("web.home.heading", "Ryker"); got != "Bem-vindo de volta, Ryker" {
		t.Fatalf("heading = %q", got)
	}
}

func TestLoadFromFSRejectsInvalidCatalogs(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"no files": {},
		"locale mismatch": {
			"locales/en-US/web.toml": {Data: []byte("locale = \"pt-BR\"\nnamespace = \"web\"\n[messages]\n\"web.a\" = \"a\"\n")},
		},
		"namespace prefix": {
			"locales/en-US/web.toml": {Data: []byte("locale = \"en-US\"\nnamespace = \"web\"\n[messages]\n\"core.a\" = \"a\"\n")},
		},
		"missing base": {
			"locales/pt-BR/web.toml": {Data: []byte("locale = \"pt-BR\"\nnamespace = \"web\"\n[messages]\n\"web.a\" = \"a\"\n")},
		},
		"key missing from base": {
			"locales/en-US/web.toml": {Data: []byte("locale = \"en-US\"\nnamespace = \"web\"\n[messages]\n\"web.a\" = \"a\"\n")},
			"locales/pt-BR/web.toml": {Data: []byte("locale = \"pt-BR\"\nnamespace = \"web\"\n[messages]\n\"web.b\" = \"b\"\n")},
		},
	}
	for name, fsys := range tests {
		if _, err := LoadFromFS(fsys); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
