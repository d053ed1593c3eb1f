package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/platform/observability"
	"github.com/unkso/titan/internal/services/web/platform/sessioncookie"
	"github.com/unkso/titan/internal/services/web/routing"
	"github.com/unkso/titan/internal/services/web/session"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/templates"
	"golang.org/x/net/html"
)

func layout(name string) routing.Layout {
	return func(child templ.Component) templ.Component {
		return templates.Element("main", []templates.Attr{templates.A("data-layout", name)}, child)
	}
}

func renderString(t *testing.T, component templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := component.Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func exampleRegistry(t *testing.T) *routing.Registry {
	t.Helper()
	registry, err := routing.NewRegistry(
		routing.Descriptor{Path: "/a", Type: routing.Authenticated, Scene: templates.Text("S1")},
		routing.Descriptor{Path: "/b", Type: routing.Unauthenticated, Layout: layout("L1"), Scene: templates.Text("S2")},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	manager, err := session.NewManager(session.Config{Key: []byte(strings.Repeat("a", session.MinKeyLength))})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return manager
}

func signedInCookie(t *testing.T, manager *session.Manager) *http.Cookie {
	t.Helper()
	token, _, err := manager.Issue(storage.User{ID: 7, Username: "Hicks"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &http.Cookie{Name: sessioncookie.Name, Value: token}
}

func serve(shell *Shell, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	shell.ServeHTTP(rec, req)
	return rec
}

func TestMountBindsRegistryInOrder(t *testing.T) {
	t.Parallel()

	shell, err := Mount(exampleRegistry(t), Dependencies{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	bindings := shell.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("bindings = %d, want 2", len(bindings))
	}

	a, b := bindings[0], bindings[1]
	if a.Path != "/a" || !a.Exact || a.Wrapper != routing.AuthenticatedWrapper {
		t.Fatalf("binding /a = %+v", a)
	}
	if got := renderString(t, a.Render()); got != `<div class="route-wrapper" data-route-type="authenticated">S1</div>` {
		t.Fatalf("/a render = %q", got)
	}
	if b.Path != "/b" || !b.Exact || b.Wrapper != routing.UnauthenticatedWrapper {
		t.Fatalf("binding /b = %+v", b)
	}
	if got := renderString(t, b.Render()); got != `<div class="route-wrapper" data-route-type="unauthenticated"><main data-layout="L1">S2</main></div>` {
		t.Fatalf("/b render = %q", got)
	}
}

func TestMountFailsWholeMountOnMissingScene(t *testing.T) {
	t.Parallel()

	registry, err := routing.NewRegistry(
		routing.Descriptor{Path: "/ok", Scene: templates.Text("ok")},
		routing.Descriptor{Path: "/broken", Type: routing.Authenticated},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	shell, err := Mount(registry, Dependencies{})
	if shell != nil {
		t.Fatal("expected no shell")
	}
	var configErr *routing.ConfigurationError
	if !errors.As(err, &configErr) || configErr.Path != "/broken" {
		t.Fatalf("err = %v, want ConfigurationError for /broken", err)
	}
}

func TestMountRequiresRegistry(t *testing.T) {
	t.Parallel()

	if _, err := Mount(nil, Dependencies{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestUnknownRouteTypeRendersUnwrappedScene(t *testing.T) {
	t.Parallel()

	registry, err := routing.NewRegistry(routing.Descriptor{Path: "/open", Type: "moderator", Scene: templates.Text("open")})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	shell, err := Mount(registry, Dependencies{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if binding := shell.Bindings()[0]; binding.Wrapper != nil || renderString(t, binding.Render()) != "open" {
		t.Fatalf("binding = %+v", binding)
	}
	if rec := serve(shell, httptest.NewRequest(http.MethodGet, "/open", nil)); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestServeHTTPGuardsByRouteType(t *testing.T) {
	t.Parallel()

	sessions := newSessions(t)
	shell, err := Mount(exampleRegistry(t), Dependencies{Sessions: sessions})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	cookie := signedInCookie(t, sessions)

	anonymousA := serve(shell, httptest.NewRequest(http.MethodGet, "/a", nil))
	if anonymousA.Code != http.StatusFound || anonymousA.Header().Get("Location") != "/login?next=%2Fa" {
		t.Fatalf("anonymous /a = %d %q", anonymousA.Code, anonymousA.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodGet, "/a", nil)
	req.AddCookie(cookie)
	signedA := serve(shell, req)
	if signedA.Code != http.StatusOK || !strings.Contains(signedA.Body.String(), `data-route-type="authenticated">S1</div>`) {
		t.Fatalf("signed-in /a = %d %q", signedA.Code, signedA.Body.String())
	}

	anonymousB := serve(shell, httptest.NewRequest(http.MethodGet, "/b", nil))
	if anonymousB.Code != http.StatusOK || !strings.Contains(anonymousB.Body.String(), `<main data-layout="L1">S2</main>`) {
		t.Fatalf("anonymous /b = %d %q", anonymousB.Code, anonymousB.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/b", nil)
	req.AddCookie(cookie)
	if signedB := serve(shell, req); signedB.Code != http.StatusFound || signedB.Header().Get("Location") != "/" {
		t.Fatalf("signed-in /b = %d %q", signedB.Code, signedB.Header().Get("Location"))
	}
}

func TestServeHTTPIsExactMatch(t *testing.T) {
	t.Parallel()

	registry, err := routing.NewRegistry(
		routing.Descriptor{Path: "/b", Scene: templates.Text("b")},
		routing.Descriptor{Path: "/c/", Scene: templates.Text("c")},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	shell, err := Mount(registry, Dependencies{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	tests := []struct {
		path string
		want int
	}{
		{path: "/b", want: http.StatusOK},
		{path: "/b/extra", want: http.StatusNotFound},
		{path: "/c/", want: http.StatusOK},
		{path: "/c/deeper", want: http.StatusNotFound},
		{path: "/missing", want: http.StatusNotFound},
	}
	for _, tc := range tests {
		rec := serve(shell, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("GET %s = %d, want %d", tc.path, rec.Code, tc.want)
		}
	}
	notFound := serve(shell, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if !strings.Contains(notFound.Body.String(), `id="app-error-state"`) {
		t.Fatalf("expected shared 404 page: %q", notFound.Body.String())
	}
}

func TestWildcardDescriptorIsCatchAll(t *testing.T) {
	t.Parallel()

	registry, err := routing.NewRegistry(
		routing.Descriptor{Path: "/", Scene: templates.Text("home")},
		routing.Descriptor{Path: "*", Scene: templates.Text("lost")},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	shell, err := Mount(registry, Dependencies{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if rec := serve(shell, httptest.NewRequest(http.MethodGet, "/", nil)); !strings.Contains(rec.Body.String(), "home") {
		t.Fatalf("root = %q", rec.Body.String())
	}
	rec := serve(shell, httptest.NewRequest(http.MethodGet, "/anything/else", nil))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "lost") {
		t.Fatalf("catch-all = %d %q", rec.Code, rec.Body.String())
	}
}

func TestUnknownPathPostIsNotFoundWithOrWithoutCatchAll(t *testing.T) {
	t.Parallel()

	withCatchAll, err := routing.NewRegistry(
		routing.Descriptor{Path: "/", Scene: templates.Text("home")},
		routing.Descriptor{Path: "*", Scene: templates.Text("lost")},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	for name, registry := range map[string]*routing.Registry{
		"catch-all": withCatchAll,
		"fallback":  exampleRegistry(t),
	} {
		shell, err := Mount(registry, Dependencies{})
		if err != nil {
			t.Fatalf("%s: Mount: %v", name, err)
		}
		rec := serve(shell, httptest.NewRequest(http.MethodPost, "/nope", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: POST /nope = %d, want %d", name, rec.Code, http.StatusNotFound)
		}
	}
}

func TestHTMXRequestGetsFragment(t *testing.T) {
	t.Parallel()

	shell, err := Mount(exampleRegistry(t), Dependencies{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/b", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(shell, req)
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<title>") || strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatalf("fragment = %q", body)
	}
}

func TestFullPageDocumentStructure(t *testing.T) {
	t.Parallel()

	shell, err := Mount(exampleRegistry(t), Dependencies{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	rec := serve(shell, httptest.NewRequest(http.MethodGet, "/b", nil))
	doc, err := html.Parse(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var main *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, attr := range n.Attr {
				if attr.Key == "id" && attr.Val == "main" {
					main = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if main == nil || main.FirstChild == nil {
		t.Fatal("expected #main container with the composed route")
	}
	if wrapper := main.FirstChild; wrapper.Data != "div" || wrapper.FirstChild == nil || wrapper.FirstChild.Data != "main" {
		t.Fatalf("unexpected tree under #main: %q", rec.Body.String())
	}
}

func TestActionsAreGuardedAndOriginChecked(t *testing.T) {
	t.Parallel()

	sessions := newSessions(t)
	called := 0
	action := Action{
		Method: http.MethodPost,
		Path:   "/a/act",
		Type:   routing.Authenticated,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called++
			w.WriteHeader(http.StatusNoContent)
		}),
	}
	shell, err := Mount(exampleRegistry(t), Dependencies{Sessions: sessions}, action)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	cookie := signedInCookie(t, sessions)

	if rec := serve(shell, httptest.NewRequest(http.MethodPost, "/a/act", nil)); rec.Code != http.StatusFound {
		t.Fatalf("anonymous action = %d", rec.Code)
	}

	crossOrigin := httptest.NewRequest(http.MethodPost, "/a/act", nil)
	crossOrigin.AddCookie(cookie)
	crossOrigin.Header.Set("Origin", "https://evil.example")
	if rec := serve(shell, crossOrigin); rec.Code != http.StatusForbidden {
		t.Fatalf("cross-origin action = %d", rec.Code)
	}

	sameOrigin := httptest.NewRequest(http.MethodPost, "http://example.com/a/act", nil)
	sameOrigin.AddCookie(cookie)
	sameOrigin.Header.Set("Origin", "http://example.com")
	if rec := serve(shell, sameOrigin); rec.Code != http.StatusNoContent {
		t.Fatalf("same-origin action = %d", rec.Code)
	}
	if called != 1 {
		t.Fatalf("handler calls = %d, want 1", called)
	}
}

func TestMountRejectsConflictingAction(t *testing.T) {
	t.Parallel()

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	_, err := Mount(exampleRegistry(t), Dependencies{},
		Action{Method: http.MethodPost, Path: "/x", Handler: noop},
		Action{Method: http.MethodPost, Path: "/x", Handler: noop},
	)
	if err == nil {
		t.Fatal("expected duplicate action error")
	}
	_, err = Mount(exampleRegistry(t), Dependencies{}, Action{Path: "/y"})
	var configErr *routing.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
}

func TestSupportEndpoints(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	shell, err := Mount(exampleRegistry(t), Dependencies{Metrics: metrics})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	health := serve(shell, httptest.NewRequest(http.MethodGet, "/up", nil))
	if health.Code != http.StatusOK || health.Body.String() != "ok" {
		t.Fatalf("health = %d %q", health.Code, health.Body.String())
	}
	_ = serve(shell, httptest.NewRequest(http.MethodGet, "/b", nil))

	rec := serve(shell, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Result().Body)
	if !strings.Contains(string(body), `titan_web_requests_total{method="GET",route="/b",status="200"} 1`) {
		t.Fatalf("metrics missing route counter: %s", body)
	}

	css := serve(shell, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	if css.Code != http.StatusOK {
		t.Fatalf("static = %d", css.Code)
	}
}

func TestPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/a", want: "/a"},
		{path: "/", want: "/{$}"},
		{path: "/c/", want: "/c/{$}"},
		{path: "*", want: "/"},
	}
	for _, tc := range tests {
		if got := Pattern(tc.path); got != tc.want {
			t.Fatalf("Pattern(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
