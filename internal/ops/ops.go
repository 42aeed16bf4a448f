// Package ops implements the operations shared by the CLI and the MCP server:
// endpoint discovery, export, summary and ledger listing.
package ops

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hpungsan/gachalog/internal/config"
	"github.com/hpungsan/gachalog/internal/gacha"
	"github.com/hpungsan/gachalog/internal/game"
)

// AppName is written to the export_app field of every document.
const AppName = "gachalog"

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Discoverer finds a validated endpoint for a title. *gacha.Locator implements it.
type Discoverer interface {
	Discover(ctx context.Context, t game.Type) (*gacha.Endpoint, error)
}

// Runtime carries the collaborators an operation needs.
type Runtime struct {
	// DB is the export ledger. Nil disables recording.
	DB      *sql.DB
	Locator Discoverer
	Fetcher gacha.Fetcher
	Logger  *slog.Logger
	Now     func() time.Time
	Version string
}

// NewRuntime wires the production locator and HTTP client from cfg.
func NewRuntime(database *sql.DB, cfg *config.Config, logger *slog.Logger, version string) (*Runtime, error) {
	localLow, err := cfg.LocalLow()
	if err != nil {
		return nil, err
	}
	client := gacha.NewClient(cfg.HTTPTimeout(), cfg.PageDelay(), cfg.UserAgent, logger)
	return &Runtime{
		DB: database,
		Locator: &gacha.Locator{
			LocalLow: localLow,
			Validate: client.Probe,
			Logger:   logger,
		},
		Fetcher: client,
		Logger:  logger,
		Now:     time.Now,
		Version: version,
	}, nil
}

func (rt *Runtime) logger() *slog.Logger {
	if rt.Logger == nil {
		return slog.Default()
	}
	return rt.Logger
}

func (rt *Runtime) now() time.Time {
	if rt.Now == nil {
		return time.Now()
	}
	return rt.Now()
}

func normalizeLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
