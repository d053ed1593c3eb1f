// Package webctx carries the signed-in viewer through request contexts.
package webctx

import (
	"context"
	"net/http"
)

// Viewer is the member behind the current request.
type Viewer struct {
	UserID    int64
	Username  string
	AvatarURL string
	SessionID string
}

// SignedIn reports whether the viewer is authenticated.
func (v Viewer) SignedIn() bool {
	return v.UserID > 0
}

type viewerKey struct{}

// WithViewer returns ctx carrying viewer.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFrom returns the viewer stored in ctx, or the anonymous viewer.
func ViewerFrom(ctx context.Context) Viewer {
	if ctx == nil {
		return Viewer{}
	}
	viewer, _ := ctx.Value(viewerKey{}).(Viewer)
	return viewer
}

// RequestViewer returns the viewer for r.
func RequestViewer(r *http.Request) Viewer {
	if r == nil {
		return Viewer{}
	}
	return ViewerFrom(r.Context())
}
