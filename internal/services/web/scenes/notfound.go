package scenes

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/templates"
)

// NotFoundTitleKey is the page title of the catch-all scene.
const NotFoundTitleKey = "web.error.page_title_not_found"

// NotFound is the catch-all scene for unknown paths.
func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.AppErrorState(http.StatusNotFound, templates.PageFrom(ctx).Loc).Render(ctx, w)
	})
}
