// Package safety parses safety command flags and composes the service
// entrypoint.
package safety

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/festsafe/festsafe/internal/platform/config"
	platformotel "github.com/festsafe/festsafe/internal/platform/otel"
	server "github.com/festsafe/festsafe/internal/services/safety/app"
	"github.com/festsafe/festsafe/internal/services/safety/auth"
)

// Config holds safety command configuration.
type Config struct {
	Port   int    `env:"FESTSAFE_SAFETY_PORT"    envDefault:"8081"`
	DBPath string `env:"FESTSAFE_SAFETY_DB_PATH" envDefault:"data/safety.db"`
}

// ParseConfig parses environment and flags into a Config. Flags win over
// environment values.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "safety gRPC listen port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "safety sqlite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the safety server and serves until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := platformotel.Setup(ctx, "safety")
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(flushCtx)
	}()

	grantConfig, err := auth.LoadAccessGrantConfigFromEnv(nil)
	if err != nil {
		return fmt.Errorf("load access grant config: %w", err)
	}

	if err := server.Run(ctx, server.Config{
		Port:        cfg.Port,
		DBPath:      cfg.DBPath,
		AccessGrant: grantConfig,
	}); err != nil {
		return fmt.Errorf("serve safety: %w", err)
	}
	return nil
}
