package library

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/search"
	"github.com/nikbrunner/nexus/internal/storage"
)

// ErrPersist wraps a failed save. The in-memory change has been applied.
var ErrPersist = errors.New("failed to persist bookmarks")

// Store loads and saves the whole collection.
type Store interface {
	Load(ctx context.Context) (*model.Collection, storage.Origin)
	Save(ctx context.Context, c *model.Collection) error
}

// Library owns the bookmark collection of one process. Every mutation
// replaces the collection value and then saves it synchronously.
type Library struct {
	mu     sync.RWMutex
	coll   *model.Collection
	origin storage.Origin
	store  Store
	log    logger.Logger
}

// Open loads the collection once.
func Open(ctx context.Context, store Store, log logger.Logger) *Library {
	coll, origin := store.Load(ctx)
	log.Info("loaded bookmarks",
		logger.Int("count", coll.Len()),
		logger.String("origin", origin.String()))

	return &Library{coll: coll, origin: origin, store: store, log: log}
}

// Origin reports where the collection came from at Open.
func (l *Library) Origin() storage.Origin {
	return l.origin
}

// Bookmarks returns a snapshot of all bookmarks, newest first.
// The slice must not be modified.
func (l *Library) Bookmarks() []model.Bookmark {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.coll.Bookmarks()
}

// Get returns a copy of the bookmark with the given ID, or nil.
func (l *Library) Get(id string) *model.Bookmark {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.coll.GetBookmarkByID(id)
}

// Categories returns the category selector list.
func (l *Library) Categories() []string {
	return search.Categories(l.Bookmarks())
}

// View returns the bookmarks visible in v.
func (l *Library) View(v search.View) []model.Bookmark {
	return v.Apply(l.Bookmarks())
}

// Add creates and prepends a bookmark.
func (l *Library) Add(ctx context.Context, params model.NewBookmarkParams) (model.Bookmark, error) {
	var added model.Bookmark
	err := l.update(ctx, func(c *model.Collection) bool {
		added = c.AddBookmark(params)
		return true
	})
	if added.ID != "" {
		l.log.Info("added bookmark", logger.String("id", added.ID), logger.String("url", added.URL))
	}
	return added, err
}

// Delete removes a bookmark. Deleting an unknown ID is a no-op that
// returns false and does not write.
func (l *Library) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := l.update(ctx, func(c *model.Collection) bool {
		deleted = c.DeleteBookmark(id)
		return deleted
	})
	if deleted {
		l.log.Info("deleted bookmark", logger.String("id", id))
	}
	return deleted, err
}

// DeleteMany removes several bookmarks with a single save.
func (l *Library) DeleteMany(ctx context.Context, ids []string) (int, error) {
	n := 0
	err := l.update(ctx, func(c *model.Collection) bool {
		for _, id := range ids {
			if c.DeleteBookmark(id) {
				n++
			}
		}
		return n > 0
	})
	return n, err
}

// Vote toggles the viewer's vote on a bookmark.
func (l *Library) Vote(ctx context.Context, id string, v model.Vote) (model.Bookmark, error) {
	var updated model.Bookmark
	var voteErr error
	err := l.update(ctx, func(c *model.Collection) bool {
		updated, voteErr = c.ToggleVote(id, v)
		return voteErr == nil
	})
	if voteErr != nil {
		return model.Bookmark{}, voteErr
	}
	return updated, err
}

// Import merges bookmarks whose URL is not yet present.
func (l *Library) Import(ctx context.Context, bookmarks []model.Bookmark) (added, skipped int, err error) {
	err = l.update(ctx, func(c *model.Collection) bool {
		added, skipped = c.ImportMerge(bookmarks)
		return added > 0
	})
	return added, skipped, err
}

// update applies fn to a copy of the collection, swaps it in and saves it
// when fn reports a change.
func (l *Library) update(ctx context.Context, fn func(c *model.Collection) bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.coll.Clone()
	if !fn(next) {
		return nil
	}
	l.coll = next

	if err := l.store.Save(ctx, next); err != nil {
		l.log.Error("failed to save bookmarks", logger.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
