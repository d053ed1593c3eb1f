package routing

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/platform/httpx"
	"github.com/unkso/titan/internal/services/web/platform/webctx"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/templates"
)

// Wrapper is the outermost access-control layer of a route. Each route type
// has exactly one Wrapper value; compare wrappers by pointer.
type Wrapper struct {
	routeType RouteType
	allow     func(webctx.Viewer) bool
	redirect  func(*http.Request) string
}

var (
	// AuthenticatedWrapper sends anonymous visitors to the login page.
	AuthenticatedWrapper = &Wrapper{
		routeType: Authenticated,
		allow:     func(v webctx.Viewer) bool { return v.SignedIn() },
		redirect: func(r *http.Request) string {
			return routepath.LoginWithNext(r.URL.RequestURI())
		},
	}
	// UnauthenticatedWrapper sends signed-in members home.
	UnauthenticatedWrapper = &Wrapper{
		routeType: Unauthenticated,
		allow:     func(v webctx.Viewer) bool { return !v.SignedIn() },
		redirect:  func(*http.Request) string { return routepath.Root },
	}
)

// RouteType returns the route type the wrapper guards.
func (w *Wrapper) RouteType() RouteType {
	if w == nil {
		return ""
	}
	return w.routeType
}

// Allows reports whether viewer may see routes behind w.
func (w *Wrapper) Allows(viewer webctx.Viewer) bool {
	if w == nil {
		return true
	}
	return w.allow(viewer)
}

// Guard returns middleware that redirects viewers the wrapper rejects.
func (w *Wrapper) Guard(next http.Handler) http.Handler {
	if w == nil {
		return next
	}
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if !w.Allows(webctx.RequestViewer(r)) {
			httpx.WriteRedirect(rw, r, w.redirect(r))
			return
		}
		next.ServeHTTP(rw, r)
	})
}

// Decorate wraps child in the wrapper's container element.
func (w *Wrapper) Decorate(child templ.Component) templ.Component {
	if w == nil {
		return child
	}
	return templates.Element("div",
		[]templates.Attr{templates.A("class", "route-wrapper"), templates.A("data-route-type", string(w.routeType))},
		child,
	)
}
