package templates

import (
	"context"
	"net/url"

	"github.com/unkso/titan/internal/services/web/platform/webctx"
	"github.com/unkso/titan/internal/services/web/theme"
)

// PageContext is the per-request data components read while rendering.
type PageContext struct {
	Lang        string
	Loc         Localizer
	Theme       *theme.Theme
	CurrentPath string
	Query       url.Values
	Viewer      webctx.Viewer
	Notice      string
}

type pageKey struct{}

// WithPage returns ctx carrying page.
func WithPage(ctx context.Context, page PageContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, pageKey{}, page)
}

// PageFrom returns the page context stored in ctx. Missing fields fall back
// to the default theme and the anonymous viewer.
func PageFrom(ctx context.Context) PageContext {
	var page PageContext
	if ctx != nil {
		page, _ = ctx.Value(pageKey{}).(PageContext)
	}
	if page.Theme == nil {
		page.Theme = theme.Default()
	}
	if page.Query == nil {
		page.Query = url.Values{}
	}
	return page
}
