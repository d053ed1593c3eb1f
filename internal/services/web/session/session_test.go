package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unkso/titan/internal/services/web/platform/requestmeta"
	"github.com/unkso/titan/internal/services/web/platform/sessioncookie"
	"github.com/unkso/titan/internal/services/web/platform/webctx"
	"github.com/unkso/titan/internal/services/web/storage"
)

var testKey = []byte(strings.Repeat("k", MinKeyLength))

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (m *memoryRevocations) RevokeSession(_ context.Context, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = map[string]time.Time{}
	}
	m.revoked[id] = expiresAt
	return nil
}

func (m *memoryRevocations) IsSessionRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok, nil
}

type userTable map[int64]storage.User

func (u userTable) FindUser(_ context.Context, id int64) (storage.User, error) {
	user, ok := u[id]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return user, nil
}

func newTestManager(t *testing.T, now func() time.Time) (*Manager, *memoryRevocations) {
	t.Helper()
	revocations := &memoryRevocations{}
	manager, err := NewManager(Config{Key: testKey, TTL: time.Hour, Now: now, Revocations: revocations})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return manager, revocations
}

func TestNewManagerRejectsShortKey(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(Config{Key: []byte("short")}); err == nil {
		t.Fatal("expected short key error")
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	manager, _ := newTestManager(t, nil)
	token, issued, err := manager.Issue(storage.User{ID: 2, Username: "Vasquez"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(issued.SessionID) != 36 {
		t.Fatalf("session id = %q, want uuid", issued.SessionID)
	}
	claims, err := manager.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 2 || claims.Username != "Vasquez" || claims.SessionID != issued.SessionID {
		t.Fatalf("claims = %+v", claims)
	}
	if !claims.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Fatalf("ExpiresAt = %s, want %s", claims.ExpiresAt, issued.ExpiresAt)
	}
}

func TestIssueRequiresUserID(t *testing.T) {
	t.Parallel()

	manager, _ := newTestManager(t, nil)
	if _, _, err := manager.Issue(storage.User{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestVerifyRejectsExpiredForgedAndRevoked(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	manager, _ := newTestManager(t, func() time.Time { return clock })
	token, claims, err := manager.Issue(storage.User{ID: 1, Username: "Ryker"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	clock = issuedAt.Add(2 * time.Hour)
	if _, err := manager.Verify(context.Background(), token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expired Verify() error = %v", err)
	}
	clock = issuedAt.Add(time.Minute)

	other, err := NewManager(Config{Key: []byte(strings.Repeat("x", MinKeyLength)), Now: func() time.Time { return clock }})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if _, err := other.Verify(context.Background(), token); !errors.Is(err, ErrInvalid) {
		t.Fatalf("forged Verify() error = %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: Issuer, Subject: "1", ID: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := manager.Verify(context.Background(), unsigned); !errors.Is(err, ErrInvalid) {
		t.Fatalf("alg none Verify() error = %v", err)
	}

	if err := manager.Revoke(context.Background(), claims); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := manager.Verify(context.Background(), token); !errors.Is(err, ErrRevoked) {
		t.Fatalf("revoked Verify() error = %v", err)
	}
	if _, err := manager.Verify(context.Background(), " "); !errors.Is(err, ErrInvalid) {
		t.Fatalf("blank Verify() error = %v", err)
	}
}

func TestMiddlewareAttachesViewer(t *testing.T) {
	t.Parallel()

	manager, _ := newTestManager(t, nil)
	users := userTable{3: {ID: 3, Username: "Hicks", Profile: storage.Profile{AvatarURL: "/static/avatar.svg"}}}
	token, _, err := manager.Issue(users[3])
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var got webctx.Viewer
	h := manager.Middleware(users, requestmeta.Policy{})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = webctx.RequestViewer(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !got.SignedIn() || got.Username != "Hicks" || got.AvatarURL != "/static/avatar.svg" {
		t.Fatalf("viewer = %+v", got)
	}
}

func TestMiddlewareClearsStaleSessions(t *testing.T) {
	t.Parallel()

	manager, _ := newTestManager(t, nil)
	removed, _, err := manager.Issue(storage.User{ID: 9, Username: "Gone"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	for name, token := range map[string]string{"garbage": "not-a-jwt", "removed member": removed} {
		var got webctx.Viewer
		h := manager.Middleware(userTable{}, requestmeta.Policy{})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = webctx.RequestViewer(r)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: token})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if got.SignedIn() {
			t.Fatalf("%s: viewer = %+v, want anonymous", name, got)
		}
		if !strings.Contains(rr.Header().Get("Set-Cookie"), "Max-Age=0") {
			t.Fatalf("%s: expected cookie clear, got %q", name, rr.Header().Get("Set-Cookie"))
		}
	}
}

func TestSignInAndSignOut(t *testing.T) {
	t.Parallel()

	manager, revocations := newTestManager(t, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := manager.SignIn(rr, req, storage.User{ID: 1, Username: "Ryker"}, requestmeta.Policy{}); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}

	out := httptest.NewRequest(http.MethodPost, "/logout", nil)
	out.AddCookie(cookie)
	outRR := httptest.NewRecorder()
	if err := manager.SignOut(outRR, out, requestmeta.Policy{}); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if len(revocations.revoked) != 1 {
		t.Fatalf("revoked = %v", revocations.revoked)
	}
	if _, err := manager.Verify(context.Background(), cookie.Value); !errors.Is(err, ErrRevoked) {
		t.Fatalf("Verify() after sign out error = %v", err)
	}
}
