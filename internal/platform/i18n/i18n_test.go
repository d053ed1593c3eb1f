package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  language.Tag
		ok    bool
	}{
		{input: "en-US", want: language.AmericanEnglish, ok: true},
		{input: "pt-BR", want: language.BrazilianPortuguese, ok: true},
		{input: "pt", want: language.BrazilianPortuguese, ok: true},
		{input: "fr-FR", ok: false},
		{input: "", ok: false},
		{input: "not a tag", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.input)
		if ok != tc.ok {
			t.Fatalf("ParseTag(%q) ok = %v, want %v", tc.input, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseTag(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestMatchTagsFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v", got)
	}
	if got := MatchTags([]language.Tag{language.BrazilianPortuguese}); got != language.BrazilianPortuguese {
		t.Fatalf("MatchTags(pt-BR) = %v", got)
	}
}

func TestPrinterUsesEmbeddedCatalog(t *testing.T) {
	t.Parallel()

	if got := Printer(language.BrazilianPortuguese).Sprintf("web.roster.remove"); got != "Remover" {
		t.Fatalf("pt-BR remove = %q", got)
	}
	if got := Printer(language.AmericanEnglish).Sprintf("web.roster.remove"); got != "Remove" {
		t.Fatalf("en-US remove = %q", got)
	}
}
