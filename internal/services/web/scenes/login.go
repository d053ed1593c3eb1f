package scenes

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/platform/timeouts"
	"github.com/unkso/titan/internal/services/web/platform/flash"
	"github.com/unkso/titan/internal/services/web/platform/httpx"
	"github.com/unkso/titan/internal/services/web/platform/requestmeta"
	"github.com/unkso/titan/internal/services/web/platform/weberror"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/session"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
	"github.com/unkso/titan/internal/services/web/widgets"
)

const (
	// LoginTitleKey is the page title of the login scene.
	LoginTitleKey = "web.login.title"

	usernameField = "username"
)

// UsernameFinder resolves a member by username.
type UsernameFinder interface {
	FindUserByUsername(ctx context.Context, username string) (storage.User, error)
}

// Login renders the sign-in form. A local next target is carried through
// the form.
func Login(tokens *theme.Theme) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		page := templates.PageFrom(ctx)
		var next templ.Component = templates.Empty()
		if target := page.Query.Get(routepath.NextParam); routepath.IsLocal(target) {
			next = templates.Element("input", []templates.Attr{
				templates.A("type", "hidden"),
				templates.A("name", routepath.NextParam),
				templates.A("value", target),
			})
		}
		return templates.Element("form", []templates.Attr{
			templates.A("class", "scene-login"),
			templates.A("method", "post"),
			templates.A("action", routepath.Login),
		},
			templates.Element("p", []templates.Attr{templates.A("style", "color:"+tokens.Palette.TextSecondary)},
				templates.Text(templates.T(page.Loc, "web.login.prompt"))),
			templates.Element("label", []templates.Attr{templates.A("for", "login-username")},
				templates.Text(templates.T(page.Loc, "web.login.username"))),
			templates.Element("input", []templates.Attr{
				templates.A("id", "login-username"),
				templates.A("name", usernameField),
				templates.A("type", "text"),
				templates.A("autocomplete", "username"),
				templates.Flag("required", true),
				templates.A("style", templates.Styles("display:block", "width:100%", "margin:"+tokens.Space(1)+" 0")),
			}),
			next,
			widgets.FlatButton(tokens, widgets.FlatButtonProps{
				Label:     templates.T(page.Loc, "web.login.submit"),
				Primary:   true,
				FullWidth: true,
				Type:      "submit",
			}),
		).Render(ctx, w)
	})
}

// LoginAction signs a member in by username and returns them to the
// requested page.
func LoginAction(users UsernameFinder, sessions *session.Manager, tokens *theme.Theme, policy requestmeta.Policy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		next := strings.TrimSpace(r.PostForm.Get(routepath.NextParam))
		username := strings.TrimSpace(r.PostForm.Get(usernameField))
		if username == "" {
			flash.Write(w, r, flash.Error("web.login.unknown_user"), policy)
			httpx.WriteRedirect(w, r, routepath.LoginWithNext(next))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Storage)
		user, err := users.FindUserByUsername(ctx, username)
		cancel()
		if errors.Is(err, storage.ErrNotFound) {
			flash.Write(w, r, flash.Error("web.login.unknown_user"), policy)
			httpx.WriteRedirect(w, r, routepath.LoginWithNext(next))
			return
		}
		if err != nil {
			weberror.WriteError(w, r, tokens, err)
			return
		}
		if err := sessions.SignIn(w, r, user, policy); err != nil {
			weberror.WriteError(w, r, tokens, err)
			return
		}
		log.Printf("session started user_id=%d", user.ID)
		if !routepath.IsLocal(next) {
			next = routepath.Root
		}
		httpx.WriteRedirect(w, r, next)
	})
}

// LogoutAction ends the session and returns to the login page.
func LogoutAction(sessions *session.Manager, policy requestmeta.Policy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.SignOut(w, r, policy); err != nil {
			log.Printf("session revoke failed err=%v", err)
		}
		flash.Write(w, r, flash.Info("web.login.notice_signed_out"), policy)
		httpx.WriteRedirect(w, r, routepath.Login)
	})
}
