// Package app mounts a route registry onto an HTTP router.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/unkso/titan/internal/services/web/platform/httpx"
	"github.com/unkso/titan/internal/services/web/platform/observability"
	"github.com/unkso/titan/internal/services/web/platform/pagerender"
	"github.com/unkso/titan/internal/services/web/platform/weberror"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/routing"
	"github.com/unkso/titan/internal/services/web/static"
)

// Binding is one mounted route.
type Binding struct {
	Path    string
	Pattern string
	Exact   bool
	Type    routing.RouteType
	Wrapper *routing.Wrapper
	Render  routing.RenderFunc
}

// Action is a non-page handler, usually a form post, mounted next to the
// route bindings. Unsafe methods require same-origin proof.
type Action struct {
	Method  string
	Path    string
	Type    routing.RouteType
	Handler http.Handler
}

// Shell is the mounted application.
type Shell struct {
	deps     Dependencies
	bindings []Binding
	mux      *http.ServeMux
	handler  http.Handler
}

// Mount registers every registry entry in order, then the actions. The first
// composition failure aborts the whole mount.
func Mount(registry *routing.Registry, deps Dependencies, actions ...Action) (*Shell, error) {
	if registry == nil {
		return nil, fmt.Errorf("mount: route registry is required")
	}
	deps = deps.withDefaults()
	shell := &Shell{
		deps: deps,
		mux:  http.NewServeMux(),
	}
	seen := make(map[string]string)

	for _, descriptor := range registry.Entries() {
		wrapper := routing.Resolve(descriptor.Type)
		render, err := routing.Compose(descriptor, wrapper)
		if err != nil {
			return nil, fmt.Errorf("mount route %q: %w", descriptor.Path, err)
		}
		pattern := http.MethodGet + " " + Pattern(descriptor.Path)
		if err := claim(seen, pattern, descriptor.Path); err != nil {
			return nil, err
		}
		binding := Binding{
			Path:    descriptor.Path,
			Pattern: pattern,
			Exact:   true,
			Type:    descriptor.Type,
			Wrapper: wrapper,
			Render:  render,
		}
		if err := shell.handle(pattern, descriptor.Path, shell.instrument(descriptor.Path, wrapper.Guard(shell.pageHandler(binding, descriptor)))); err != nil {
			return nil, fmt.Errorf("mount route %q: %w", descriptor.Path, err)
		}
		shell.bindings = append(shell.bindings, binding)
	}

	for _, action := range actions {
		if err := shell.mountAction(action, seen); err != nil {
			return nil, err
		}
	}

	shell.mountSupport(seen)
	// Method-less fallback: a wildcard descriptor owns only GET /, so other
	// methods on unknown paths still get the 404 page.
	shell.mux.Handle("/", shell.instrument("not_found", http.HandlerFunc(shell.notFound)))

	shell.handler = httpx.Chain(shell.mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(deps.Logger),
		deps.Sessions.Middleware(deps.Repository, deps.Policy),
	)
	return shell, nil
}

// Pattern converts a route path to an exact-match ServeMux pattern. The
// wildcard path becomes the catch-all.
func Pattern(path string) string {
	switch {
	case path == routepath.Wildcard:
		return "/"
	case strings.HasSuffix(path, "/"):
		return path + "{$}"
	default:
		return path
	}
}

func claim(seen map[string]string, pattern, owner string) error {
	if previous, ok := seen[pattern]; ok {
		return fmt.Errorf("mount %q: pattern %q already owned by %q", owner, pattern, previous)
	}
	seen[pattern] = owner
	return nil
}

func (s *Shell) pageHandler(binding Binding, descriptor routing.Descriptor) http.Handler {
	status := http.StatusOK
	if descriptor.Path == routepath.Wildcard {
		status = http.StatusNotFound
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := pagerender.WritePage(w, r, s.deps.Theme, pagerender.Page{
			TitleKey:   descriptor.Title,
			StatusCode: status,
			Body:       binding.Render(),
		})
		if err != nil {
			weberror.WriteError(w, r, s.deps.Theme, err)
		}
	})
}

func (s *Shell) mountAction(action Action, seen map[string]string) error {
	method := strings.ToUpper(strings.TrimSpace(action.Method))
	if method == "" {
		method = http.MethodPost
	}
	path := strings.TrimSpace(action.Path)
	if !strings.HasPrefix(path, "/") {
		return &routing.ConfigurationError{Path: action.Path, Reason: "action path must start with /"}
	}
	if action.Handler == nil {
		return &routing.ConfigurationError{Path: path, Reason: "action handler is required"}
	}
	pattern := method + " " + Pattern(path)
	if err := claim(seen, pattern, path); err != nil {
		return err
	}
	handler := action.Handler
	if method != http.MethodGet && method != http.MethodHead {
		handler = s.deps.Policy.RequireSameOrigin(handler)
	}
	handler = routing.Resolve(action.Type).Guard(handler)
	if err := s.handle(pattern, path, s.instrument(path, handler)); err != nil {
		return fmt.Errorf("mount action %q: %w", pattern, err)
	}
	return nil
}

// handle registers pattern, reporting ServeMux rejections as configuration
// errors instead of panics.
func (s *Shell) handle(pattern, owner string, handler http.Handler) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &routing.ConfigurationError{Path: owner, Reason: fmt.Sprint(recovered)}
		}
	}()
	s.mux.Handle(pattern, handler)
	return nil
}

func (s *Shell) mountSupport(seen map[string]string) {
	support := []struct {
		pattern string
		handler http.Handler
	}{
		{pattern: http.MethodGet + " " + routepath.Health, handler: http.HandlerFunc(health)},
		{pattern: http.MethodGet + " " + routepath.Metrics, handler: s.deps.Metrics.Handler()},
		{pattern: http.MethodGet + " " + routepath.StaticPrefix, handler: http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS)))},
	}
	for _, entry := range support {
		if _, taken := seen[entry.pattern]; taken {
			continue
		}
		seen[entry.pattern] = entry.pattern
		s.mux.Handle(entry.pattern, entry.handler)
	}
}

func (s *Shell) instrument(route string, handler http.Handler) http.Handler {
	return httpx.Chain(handler, httpx.Trace(route), s.deps.Metrics.Middleware(route))
}

func (s *Shell) notFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, s.deps.Theme, http.StatusNotFound)
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Bindings returns the mounted routes in registry order.
func (s *Shell) Bindings() []Binding {
	if s == nil {
		return nil
	}
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// ServeHTTP implements http.Handler.
func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s == nil || s.handler == nil {
		http.NotFound(w, r)
		return
	}
	s.handler.ServeHTTP(w, r)
}
