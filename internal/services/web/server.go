package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/unkso/titan/internal/platform/timeouts"
	"github.com/unkso/titan/internal/services/web/app"
	"github.com/unkso/titan/internal/services/web/platform/observability"
	"github.com/unkso/titan/internal/services/web/platform/requestmeta"
	"github.com/unkso/titan/internal/services/web/routes"
	"github.com/unkso/titan/internal/services/web/session"
	"github.com/unkso/titan/internal/services/web/storage/sqlite"
	"github.com/unkso/titan/internal/services/web/store"
	"github.com/unkso/titan/internal/services/web/theme"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr            string
	DBPath              string
	ThemePath           string
	SessionKey          string
	SessionTTL          time.Duration
	SeedDemo            bool
	TrustForwardedProto bool
	Logger              *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	repo       *sqlite.Store
}

// NewHandler mounts the default route registry and actions with deps.
func NewHandler(deps app.Dependencies) (http.Handler, error) {
	registry, err := routes.Default(deps)
	if err != nil {
		return nil, err
	}
	shell, err := app.Mount(registry, deps, routes.Actions(deps)...)
	if err != nil {
		return nil, fmt.Errorf("mount routes: %w", err)
	}
	return shell, nil
}

// NewServer validates config, opens storage and constructs a web server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	tokens, err := theme.Load(cfg.ThemePath)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}

	repo, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open roster store: %w", err)
	}
	server, err := newServer(ctx, cfg, httpAddr, tokens, repo)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return server, nil
}

func newServer(ctx context.Context, cfg Config, httpAddr string, tokens *theme.Theme, repo *sqlite.Store) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SeedDemo {
		seeded, err := repo.SeedDemo(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed demo roster: %w", err)
		}
		if seeded {
			logger.Printf("demo roster seeded path=%s", cfg.DBPath)
		}
	}

	roster := store.New(store.State{}, store.PersistTo(repo))
	if err := store.Hydrate(ctx, roster, repo); err != nil {
		return nil, fmt.Errorf("hydrate roster: %w", err)
	}
	sessions, err := session.NewManager(session.Config{
		Key:         []byte(cfg.SessionKey),
		TTL:         cfg.SessionTTL,
		Revocations: repo,
	})
	if err != nil {
		return nil, fmt.Errorf("init sessions: %w", err)
	}

	handler, err := NewHandler(app.Dependencies{
		Theme:      tokens,
		Store:      roster,
		Repository: repo,
		Sessions:   sessions,
		Metrics:    observability.NewMetrics(),
		Policy:     requestmeta.Policy{TrustForwardedProto: cfg.TrustForwardedProto},
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		repo:     repo,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("web listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			log.Printf("close roster store err=%v", err)
		}
	}
}
