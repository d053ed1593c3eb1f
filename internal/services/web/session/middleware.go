package session

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/unkso/titan/internal/platform/timeouts"
	"github.com/unkso/titan/internal/services/web/platform/httpx"
	"github.com/unkso/titan/internal/services/web/platform/requestmeta"
	"github.com/unkso/titan/internal/services/web/platform/sessioncookie"
	"github.com/unkso/titan/internal/services/web/platform/webctx"
	"github.com/unkso/titan/internal/services/web/storage"
)

// UserFinder loads the member behind a session.
type UserFinder interface {
	FindUser(ctx context.Context, id int64) (storage.User, error)
}

// Middleware attaches the signed-in viewer to each request. Invalid,
// expired or revoked cookies are cleared and the request continues
// anonymously, as does a session whose member no longer exists.
func (m *Manager) Middleware(users UserFinder, policy requestmeta.Policy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessioncookie.Read(r)
			if !ok || m == nil {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := m.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrInvalid) && !errors.Is(err, ErrExpired) && !errors.Is(err, ErrRevoked) {
					log.Printf("session verify failed path=%s err=%v", r.URL.Path, err)
				}
				sessioncookie.Clear(w, r, policy)
				next.ServeHTTP(w, r)
				return
			}

			viewer := webctx.Viewer{UserID: claims.UserID, Username: claims.Username, SessionID: claims.SessionID}
			if users != nil {
				ctx, cancel := context.WithTimeout(r.Context(), timeouts.Storage)
				user, err := users.FindUser(ctx, claims.UserID)
				cancel()
				switch {
				case errors.Is(err, storage.ErrNotFound):
					sessioncookie.Clear(w, r, policy)
					next.ServeHTTP(w, r)
					return
				case err != nil:
					log.Printf("session user lookup failed user_id=%d err=%v", claims.UserID, err)
				default:
					viewer.Username = user.Username
					viewer.AvatarURL = user.Profile.AvatarURL
				}
			}
			next.ServeHTTP(w, r.WithContext(webctx.WithViewer(r.Context(), viewer)))
		})
	}
}

// SignIn issues a session for user and writes the cookie.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, user storage.User, policy requestmeta.Policy) error {
	token, claims, err := m.Issue(user)
	if err != nil {
		return err
	}
	sessioncookie.Write(w, r, token, claims.ExpiresAt, policy)
	return nil
}

// SignOut revokes the request's session, if any, and clears the cookie.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) error {
	defer sessioncookie.Clear(w, r, policy)
	token, ok := sessioncookie.Read(r)
	if !ok {
		return nil
	}
	claims, err := m.Verify(r.Context(), token)
	if err != nil {
		return nil
	}
	return m.Revoke(r.Context(), claims)
}
