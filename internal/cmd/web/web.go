// Package web parses web command configuration and launches the roster
// service.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/unkso/titan/internal/platform/cmd"
	"github.com/unkso/titan/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"TITAN_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"TITAN_WEB_DB_PATH" envDefault:"data/titan.db"`
	ThemePath           string        `env:"TITAN_WEB_THEME_PATH"`
	SessionKey          string        `env:"TITAN_WEB_SESSION_KEY"`
	SessionTTL          time.Duration `env:"TITAN_WEB_SESSION_TTL" envDefault:"12h"`
	SeedDemo            bool          `env:"TITAN_WEB_SEED_DEMO"`
	TrustForwardedProto bool          `env:"TITAN_WEB_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Roster SQLite database path")
		fs.StringVar(&cfg.ThemePath, "theme", cfg.ThemePath, "Theme token TOML file")
		fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime")
		fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "Seed a demo roster into an empty database")
		fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto for cookie security")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			DBPath:              cfg.DBPath,
			ThemePath:           cfg.ThemePath,
			SessionKey:          cfg.SessionKey,
			SessionTTL:          cfg.SessionTTL,
			SeedDemo:            cfg.SeedDemo,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
