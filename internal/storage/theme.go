package storage

import (
	"context"

	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/theme"
)

// ThemeStore persists the theme preference as a bare string.
type ThemeStore struct {
	kv  KV
	log logger.Logger
}

func NewThemeStore(kv KV, log logger.Logger) *ThemeStore {
	return &ThemeStore{kv: kv, log: log}
}

// Load returns the stored mode, or System when absent, invalid or unreadable.
func (s *ThemeStore) Load(ctx context.Context) theme.Mode {
	raw, ok, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		s.log.Warn("failed to read theme", logger.Error(err))
		return theme.System
	}
	if !ok {
		return theme.System
	}
	mode, err := theme.Parse(raw)
	if err != nil {
		s.log.Warn("ignoring stored theme", logger.Error(err))
		return theme.System
	}
	return mode
}

func (s *ThemeStore) Save(ctx context.Context, mode theme.Mode) error {
	return s.kv.Set(ctx, ThemeKey, string(mode))
}
