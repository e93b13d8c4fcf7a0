package storage

import (
	"context"
	"errors"
)

// Keys used by nexus in every backend.
const (
	BookmarksKey = "nexus_bookmarks"
	ThemeKey     = "nexus_theme"
	corruptKey   = BookmarksKey + ".corrupt"
)

var ErrClosed = errors.New("storage closed")

// KV is a string key-value store. Values are whole JSON documents.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	Close() error
}
