package model

import (
	"errors"
	"fmt"
)

var ErrBookmarkNotFound = errors.New("bookmark not found")

// Collection holds all bookmarks, newest first.
//
// Mutators never write into an existing backing array: every change builds a
// fresh slice, so slices returned by Bookmarks stay valid snapshots.
type Collection struct {
	bookmarks []Bookmark
}

// NewCollection creates a Collection from the given bookmarks in order.
func NewCollection(bookmarks []Bookmark) *Collection {
	c := &Collection{bookmarks: make([]Bookmark, len(bookmarks))}
	copy(c.bookmarks, bookmarks)
	return c
}

// DefaultCollection creates a Collection holding the seed dataset.
func DefaultCollection() *Collection {
	return NewCollection(DefaultBookmarks())
}

// Bookmarks returns the current bookmarks. Callers must not modify the slice.
func (c *Collection) Bookmarks() []Bookmark {
	return c.bookmarks
}

// Len returns the number of bookmarks.
func (c *Collection) Len() int {
	return len(c.bookmarks)
}

// Clone returns an independent copy of the collection.
func (c *Collection) Clone() *Collection {
	return NewCollection(c.bookmarks)
}

// GetBookmarkByID returns a copy of the bookmark with the given ID, or nil.
func (c *Collection) GetBookmarkByID(id string) *Bookmark {
	idx := c.indexOf(id)
	if idx < 0 {
		return nil
	}
	b := c.bookmarks[idx]
	return &b
}

// HasBookmarkURL reports whether a bookmark with the exact URL exists.
func (c *Collection) HasBookmarkURL(url string) bool {
	for _, b := range c.bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// AddBookmark creates a bookmark from params and prepends it.
// CreatedAt never goes below the newest existing bookmark.
func (c *Collection) AddBookmark(params NewBookmarkParams) Bookmark {
	b := NewBookmark(params)
	for _, existing := range c.bookmarks {
		if existing.CreatedAt.After(b.CreatedAt) {
			b.CreatedAt = existing.CreatedAt
		}
	}

	next := make([]Bookmark, 0, len(c.bookmarks)+1)
	next = append(next, b)
	next = append(next, c.bookmarks...)
	c.bookmarks = next

	return b
}

// DeleteBookmark removes the bookmark with the given ID.
// Returns false and leaves the collection unchanged if it does not exist.
func (c *Collection) DeleteBookmark(id string) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}

	next := make([]Bookmark, 0, len(c.bookmarks)-1)
	next = append(next, c.bookmarks[:idx]...)
	next = append(next, c.bookmarks[idx+1:]...)
	c.bookmarks = next

	return true
}

// ToggleVote applies the viewer's like or dislike to a bookmark and returns
// the updated record.
func (c *Collection) ToggleVote(id string, v Vote) (Bookmark, error) {
	if v != VoteLike && v != VoteDislike {
		return Bookmark{}, fmt.Errorf("%w: got %q", ErrInvalidVote, string(v))
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}

	next := make([]Bookmark, len(c.bookmarks))
	copy(next, c.bookmarks)
	next[idx] = ApplyVote(next[idx], v)
	c.bookmarks = next

	return next[idx], nil
}

// ImportMerge appends imported bookmarks whose URL is not yet present.
// Imported records keep their metadata; colliding IDs are regenerated.
// Returns counts of added and skipped (duplicate URL) bookmarks.
func (c *Collection) ImportMerge(imported []Bookmark) (added, skipped int) {
	seenURLs := make(map[string]bool, len(c.bookmarks))
	seenIDs := make(map[string]bool, len(c.bookmarks))
	for _, b := range c.bookmarks {
		seenURLs[b.URL] = true
		seenIDs[b.ID] = true
	}

	next := make([]Bookmark, len(c.bookmarks), len(c.bookmarks)+len(imported))
	copy(next, c.bookmarks)

	for _, b := range imported {
		if seenURLs[b.URL] {
			skipped++
			continue
		}
		if b.ID == "" || seenIDs[b.ID] {
			b.ID = generateUUID()
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		seenURLs[b.URL] = true
		seenIDs[b.ID] = true
		next = append(next, b)
		added++
	}

	c.bookmarks = next
	return added, skipped
}

func (c *Collection) indexOf(id string) int {
	for i := range c.bookmarks {
		if c.bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}
