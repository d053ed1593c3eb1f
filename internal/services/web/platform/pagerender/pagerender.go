// Package pagerender writes pages as full documents or HTMX fragments.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	flashnotice "github.com/unkso/titan/internal/services/web/platform/flash"
	"github.com/unkso/titan/internal/services/web/platform/httpx"
	webi18n "github.com/unkso/titan/internal/services/web/platform/i18n"
	"github.com/unkso/titan/internal/services/web/platform/webctx"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
)

// Page describes one page response.
type Page struct {
	Title      string
	// TitleKey is localized when Title is blank.
	TitleKey   string
	StatusCode int
	Body       templ.Component
}

// RequestPage builds the render context for r. A pending flash notice is
// consumed and localized.
func RequestPage(w http.ResponseWriter, r *http.Request, tokens *theme.Theme) templates.PageContext {
	loc, lang := webi18n.ResolveLocalizer(w, r)
	page := templates.PageContext{
		Lang:   lang,
		Loc:    loc,
		Theme:  tokens,
		Viewer: webctx.RequestViewer(r),
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.Query = r.URL.Query()
	}
	if notice, ok := flashnotice.ReadAndClear(w, r); ok {
		page.Notice = strings.TrimSpace(templates.T(loc, notice.Key, notice.FormatArgs()...))
	}
	return page
}

// WritePage renders page. HTMX requests get the body plus a title tag;
// everything else gets the full document.
func WritePage(w http.ResponseWriter, r *http.Request, tokens *theme.Theme, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = templates.Empty()
	}

	pageCtx := RequestPage(w, r, tokens)
	ctx := templates.WithPage(httpx.RequestContext(r), pageCtx)
	title := page.Title
	if strings.TrimSpace(title) == "" && page.TitleKey != "" {
		title = templates.T(pageCtx.Loc, page.TitleKey)
	}

	var component templ.Component
	if httpx.IsHTMXRequest(r) {
		component = templates.Fragment(templates.TitleTag(title), templates.Notice(pageCtx.Notice), body)
	} else {
		component = templates.Document(pageCtx, title, body)
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
