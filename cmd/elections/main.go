package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/elections/internal/catalog"
	"github.com/jask/elections/internal/config"
	"github.com/jask/elections/internal/database"
	"github.com/jask/elections/internal/database/repository"
	"github.com/jask/elections/internal/election"
	"github.com/jask/elections/internal/service"
	"github.com/jask/elections/internal/tui"
)

// typeFlags collects repeated -type values.
type typeFlags []string

func (f *typeFlags) String() string { return strings.Join(*f, ",") }

func (f *typeFlags) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			*f = append(*f, p)
		}
	}
	return nil
}

func main() {
	var (
		configPath string
		types      typeFlags
		reseed     bool
	)
	flag.StringVar(&configPath, "config", "", "path to config.toml (default $ELECTIONS_CONFIG or ~/.config/elections/config.toml)")
	flag.Var(&types, "type", "election type to preselect (repeatable, comma separated)")
	flag.BoolVar(&reseed, "reseed", false, "rebuild the sqlite catalog snapshot and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	if reseed {
		if err := runReseed(ctx, cfg, logger); err != nil {
			log.Fatalf("reseed: %v", err)
		}
		fmt.Printf("catalog snapshot rebuilt in %s\n", cfg.Database.Path)
		return
	}

	provider, db, err := newProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	tag, err := election.ParseLocale(cfg.UI.Locale)
	if err != nil {
		log.Fatalf("locale: %v", err)
	}
	format, err := election.NewFormatter(tag)
	if err != nil {
		log.Fatalf("locale: %v", err)
	}

	preselect := cfg.UI.Types
	if len(types) > 0 {
		preselect = types
	}

	logger.Info("starting", "source", cfg.Catalog.Source, "timezone", loc.String(), "locale", tag.String())
	app := tui.New(ctx, tui.Options{
		Catalog:   &service.CatalogService{Provider: provider, Logger: logger},
		Formatter: format,
		Location:  loc,
		Types:     preselect,
		Logger:    logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// newProvider builds the configured catalog source. The sqlite source
// seeds its snapshot from the built-in catalog on first use.
func newProvider(ctx context.Context, cfg config.Config) (catalog.Provider, *sql.DB, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return catalog.FileProvider{Path: cfg.Catalog.Path}, nil, nil
	case config.SourceSQLite:
		db, err := database.Prepare(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		records, err := catalog.Fixture()
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if _, err := database.SeedCatalog(ctx, db, records); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("seed catalog: %w", err)
		}
		return catalog.StoreProvider{Elections: repository.NewElectionRepo(db)}, db, nil
	default:
		return catalog.FixtureProvider{Delay: cfg.Catalog.Delay}, nil, nil
	}
}

// runReseed replaces the sqlite snapshot with catalog.path when set,
// otherwise with the built-in catalog.
func runReseed(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	var src catalog.Provider = catalog.FixtureProvider{}
	if cfg.Catalog.Path != "" {
		src = catalog.FileProvider{Path: cfg.Catalog.Path}
	}
	records, err := src.Load(ctx)
	if err != nil {
		return err
	}

	db, err := database.Prepare(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	maintenance := &service.MaintenanceService{DB: db}
	if err := maintenance.Reseed(ctx, records); err != nil {
		return err
	}
	logger.Info("catalog reseeded", "records", len(records), "db", cfg.Database.Path)
	return nil
}

func newLogger(c config.LogConfig) (*slog.Logger, func(), error) {
	if c.Path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	level, err := c.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), func() { _ = f.Close() }, nil
}
