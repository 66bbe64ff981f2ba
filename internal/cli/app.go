package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/stock"
	"github.com/erazemk/zaloga/internal/store"
)

// app is one opened, migrated database with the core components wired to it.
type app struct {
	cfg      *config.Config
	pool     *sql.DB
	store    *store.Store
	mutator  *stock.Mutator
	closeLog func()
}

// open loads configuration, sets up logging, opens the database and runs
// migrations. No store access happens before migrations complete.
func (o *RootOptions) open(ctx context.Context) (*app, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.Driver != "" {
		cfg.Database.Driver = o.Driver
	}
	if o.DSN != "" {
		cfg.Database.DSN = o.DSN
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}

	closeLog, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		closeLog()
		return nil, err
	}
	a.closeLog = closeLog
	return a, nil
}

func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	strategy, err := stock.ParseStrategy(cfg.Stock.Strategy)
	if err != nil {
		return nil, err
	}

	pool, err := db.Open(dialect, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, pool, dialect); err != nil {
		pool.Close()
		return nil, err
	}

	s := store.New(pool, dialect)
	return &app{
		cfg:     cfg,
		pool:    pool,
		store:   s,
		mutator: stock.New(s, strategy),
	}, nil
}

func (a *app) Close() error {
	err := a.pool.Close()
	if a.closeLog != nil {
		a.closeLog()
	}
	return err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}
