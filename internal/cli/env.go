package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/nexus/internal/ai"
	"github.com/nikbrunner/nexus/internal/config"
	"github.com/nikbrunner/nexus/internal/library"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/storage"
	"github.com/nikbrunner/nexus/internal/theme"
)

// env is everything a command needs, built from the config file.
type env struct {
	cfg      *config.Config
	log      logger.Logger
	kv       storage.KV
	lib      *library.Library
	themes   *storage.ThemeStore
	enricher *ai.Enricher
}

// setupOptions controls where logs go. The TUI owns the terminal, so it
// logs to the configured file instead of stderr.
type setupOptions struct {
	logToFile bool
}

func setup(ctx context.Context, opts setupOptions) (*env, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locate config: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logOpts := logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}
	if opts.logToFile {
		logOpts.File = cfg.Log.File
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	kv, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	lib := library.Open(ctx, storage.NewBookmarkStore(kv, log), log)
	if lib.Origin() == storage.OriginRecovered {
		log.Warn("stored bookmarks were unreadable, started from the default set")
	}

	// A typed nil *Client must not reach the enricher as a non-nil interface.
	var suggester ai.Suggester
	if client, err := ai.NewClient(cfg.AI); err == nil {
		suggester = client
	} else {
		log.Debug("AI analysis disabled", logger.Error(err))
	}
	enricher := ai.NewEnricher(suggester, cfg.AI.Breaker, log)
	enricher.Hints = func() string { return ai.BuildContext(lib.Bookmarks()) }

	return &env{
		cfg:      cfg,
		log:      log,
		kv:       kv,
		lib:      lib,
		themes:   storage.NewThemeStore(kv, log),
		enricher: enricher,
	}, nil
}

// signal returns the host color scheme signal. The terminal background is
// queried once and used when the desktop setting is unavailable.
func (e *env) signal() theme.Signal {
	return theme.NewSystemSignal(lipgloss.HasDarkBackground())
}

func (e *env) close() {
	if err := e.kv.Close(); err != nil {
		e.log.Warn("failed to close storage", logger.Error(err))
	}
	_ = e.log.Sync()
}
