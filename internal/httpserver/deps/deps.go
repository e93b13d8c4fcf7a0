package deps

import (
	"context"
	"time"

	"github.com/nikbrunner/nexus/internal/ai"
	"github.com/nikbrunner/nexus/internal/library"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/theme"
)

// ThemeStore persists the theme preference.
type ThemeStore interface {
	Load(ctx context.Context) theme.Mode
	Save(ctx context.Context, mode theme.Mode) error
}

type Deps struct {
	Logger    logger.Logger
	Library   *library.Library
	Themes    ThemeStore
	Signal    theme.Signal // resolves the system mode, nil means light
	Analyzer  ai.Analyzer  // nil answers every analysis with the fallback
	StartTime time.Time
	Version   string
}
