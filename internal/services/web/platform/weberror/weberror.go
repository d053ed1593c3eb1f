// Package weberror renders localized error responses.
package weberror

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/unkso/titan/internal/services/web/platform/errors"
	webi18n "github.com/unkso/titan/internal/services/web/platform/i18n"
	"github.com/unkso/titan/internal/services/web/platform/pagerender"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
)

// ShouldRenderAppError reports whether status gets the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Raw error text
// is never returned.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteAppError writes the error page for statusCode.
func WriteAppError(w http.ResponseWriter, r *http.Request, tokens *theme.Theme, statusCode int) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	err := pagerender.WritePage(w, r, tokens, pagerender.Page{
		Title:      templates.AppErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Body:       templates.AppErrorState(statusCode, loc),
	})
	if err != nil {
		log.Printf("render error page status=%d err=%v", statusCode, err)
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteError maps err to a status and writes the error page or a short
// localized message.
func WriteError(w http.ResponseWriter, r *http.Request, tokens *theme.Theme, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		path := "-"
		if r != nil && r.URL != nil {
			path = r.URL.Path
		}
		log.Printf("request failed path=%s status=%d err=%v", path, statusCode, err)
	}
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, tokens, statusCode)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
