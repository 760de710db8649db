package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vmunix/newfile/internal/config"
	"github.com/vmunix/newfile/internal/generator"
	"github.com/vmunix/newfile/internal/store"
)

// app bundles what a command needs. Commands build it on demand so that
// purely local commands never touch the database.
type app struct {
	cfg     *config.Config
	cfgPath string // empty when running on built-in defaults
	log     *slog.Logger

	db      *sql.DB
	store   *store.Store
	history *store.HistoryStore
	gen     *generator.Generator
}

// loadConfig resolves --config, then discovery. No file at all means defaults.
func loadConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		p, err := config.Discover()
		if errors.Is(err, config.ErrNotFound) {
			return config.Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newApp(withStore bool) (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.General.LogLevel),
	}))

	a := &app{cfg: cfg, cfgPath: path, log: logger}
	if !withStore {
		a.gen = generator.New(logger)
		return a, nil
	}

	db, err := store.Open(cfg.General.Database)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.store = store.NewStore(db)
	a.history = store.NewHistoryStore(db)
	a.gen = generator.New(logger, generator.WithHistory(a.history))
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// saveConfig persists settings changes. Without a config file one is
// created at the default location.
func (a *app) saveConfig() (string, error) {
	path := a.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := a.cfg.Write(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	a.cfgPath = path
	return path, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
