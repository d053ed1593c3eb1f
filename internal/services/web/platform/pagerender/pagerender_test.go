package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	flashnotice "github.com/unkso/titan/internal/services/web/platform/flash"
	"github.com/unkso/titan/internal/services/web/platform/requestmeta"
	"github.com/unkso/titan/internal/services/web/platform/webctx"
	"github.com/unkso/titan/internal/services/web/theme"
)

func rawComponent(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

func TestWritePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/roster", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, theme.Default(), Page{
		Title:      "Roster",
		StatusCode: http.StatusCreated,
		Body:       rawComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) || !strings.Contains(body, "<title>Roster | Titan</title>") {
		t.Fatalf("body = %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("expected htmx fragment without document wrapper")
	}
}

func TestWritePageRendersFullDocument(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/roster", nil)
	rr := httptest.NewRecorder()
	err := WritePage(rr, req, theme.Default(), Page{Title: "Roster", Body: rawComponent(`<section id="fragment-root">ok</section>`)})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<!DOCTYPE html>", `id="main"`, `id="fragment-root"`, "--titan-primary"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
}

func TestWritePageLocalizesFlashNotice(t *testing.T) {
	t.Parallel()

	writeRR := httptest.NewRecorder()
	flashnotice.Write(writeRR, httptest.NewRequest(http.MethodPost, "/roster/remove", nil), flashnotice.Success("web.roster.notice_removed", "Vasquez"), requestmeta.Policy{})
	cookie, err := http.ParseSetCookie(writeRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/roster?lang=en-US", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	if err := WritePage(rr, req, theme.Default(), Page{Title: "Roster"}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if !strings.Contains(rr.Body.String(), "Vasquez was removed from the roster.") {
		t.Fatalf("body missing notice: %q", rr.Body.String())
	}
}

func TestRequestPageCarriesViewerAndQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/roster?org=alpha-company", nil)
	req = req.WithContext(webctx.WithViewer(req.Context(), webctx.Viewer{UserID: 3, Username: "Hicks"}))
	page := RequestPage(httptest.NewRecorder(), req, nil)
	if page.Viewer.Username != "Hicks" || page.Query.Get("org") != "alpha-company" || page.CurrentPath != "/roster" {
		t.Fatalf("page = %+v", page)
	}
	if page.Lang != "en-US" || page.Loc == nil {
		t.Fatalf("language = %q", page.Lang)
	}
}
