package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/storage"
	"github.com/nikbrunner/nexus/internal/theme"
)

func TestThemeStore(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	s := storage.NewThemeStore(kv, logger.NewNop())

	if got := s.Load(ctx); got != theme.System {
		t.Errorf("expected system when absent, got %q", got)
	}

	if err := s.Save(ctx, theme.Dark); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if got := s.Load(ctx); got != theme.Dark {
		t.Errorf("expected dark, got %q", got)
	}

	raw, _, _ := kv.Get(ctx, storage.ThemeKey)
	if raw != "dark" {
		t.Errorf("theme must be stored as a bare string, got %q", raw)
	}

	kv.Set(ctx, storage.ThemeKey, "sepia")
	if got := s.Load(ctx); got != theme.System {
		t.Errorf("expected system for invalid value, got %q", got)
	}
}

func TestThemeStore_ReadError(t *testing.T) {
	s := storage.NewThemeStore(failingKV{err: errors.New("boom")}, logger.NewNop())
	if got := s.Load(context.Background()); got != theme.System {
		t.Errorf("expected system on read error, got %q", got)
	}
}
