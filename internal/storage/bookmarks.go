package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/model"
)

// Origin tells where a loaded collection came from.
type Origin int

const (
	// OriginSeed means nothing was stored yet and the seed dataset was used.
	OriginSeed Origin = iota
	// OriginStored means the stored collection was decoded.
	OriginStored
	// OriginRecovered means the stored value was unreadable and the seed
	// dataset was used instead.
	OriginRecovered
)

func (o Origin) String() string {
	switch o {
	case OriginSeed:
		return "seed"
	case OriginStored:
		return "stored"
	case OriginRecovered:
		return "recovered"
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// record is the persisted shape of a bookmark. createdAt is epoch
// milliseconds and the vote fields are optional so that records written
// before voting existed still decode.
type record struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"createdAt"`
	Likes       *int     `json:"likes,omitempty"`
	Dislikes    *int     `json:"dislikes,omitempty"`
	UserVote    *string  `json:"userVote"`
}

func toRecord(b model.Bookmark) record {
	likes, dislikes := b.Likes, b.Dislikes
	r := record{
		ID:          b.ID,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		Tags:        b.Tags,
		CreatedAt:   b.CreatedAt.UnixMilli(),
		Likes:       &likes,
		Dislikes:    &dislikes,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if b.UserVote != model.VoteNone {
		v := string(b.UserVote)
		r.UserVote = &v
	}
	return r
}

// migrate fills fields missing from older records: counters default to 0,
// an absent or unrecognised vote becomes none.
func (r record) migrate() model.Bookmark {
	b := model.Bookmark{
		ID:          r.ID,
		URL:         r.URL,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Tags:        r.Tags,
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if r.Likes != nil {
		b.Likes = *r.Likes
	}
	if r.Dislikes != nil {
		b.Dislikes = *r.Dislikes
	}
	if r.UserVote != nil {
		if v, err := model.ParseVote(*r.UserVote); err == nil {
			b.UserVote = v
		}
	}
	return b
}

// EncodeBookmarks serializes bookmarks in the persisted wire format.
func EncodeBookmarks(bookmarks []model.Bookmark) ([]byte, error) {
	records := make([]record, len(bookmarks))
	for i, b := range bookmarks {
		records[i] = toRecord(b)
	}
	return json.Marshal(records)
}

// DecodeBookmarks parses the persisted wire format and migrates each record.
func DecodeBookmarks(data []byte) ([]model.Bookmark, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, fmt.Errorf("bookmarks: expected a JSON array")
	}

	bookmarks := make([]model.Bookmark, len(records))
	for i, r := range records {
		bookmarks[i] = r.migrate()
	}
	return bookmarks, nil
}

// BookmarkStore persists the bookmark collection as one JSON array.
type BookmarkStore struct {
	kv  KV
	log logger.Logger
}

func NewBookmarkStore(kv KV, log logger.Logger) *BookmarkStore {
	return &BookmarkStore{kv: kv, log: log}
}

// Load returns the stored collection. It never fails: an absent key yields
// the seed dataset and an unreadable one yields the seed dataset after the
// bad value has been copied aside.
func (s *BookmarkStore) Load(ctx context.Context) (*model.Collection, Origin) {
	raw, ok, err := s.kv.Get(ctx, BookmarksKey)
	if err != nil {
		s.log.Warn("failed to read bookmarks, using defaults", logger.Error(err))
		return model.DefaultCollection(), OriginRecovered
	}
	if !ok {
		return model.DefaultCollection(), OriginSeed
	}

	bookmarks, err := DecodeBookmarks([]byte(raw))
	if err != nil {
		s.log.Warn("stored bookmarks are malformed, using defaults",
			logger.String("backup_key", corruptKey),
			logger.Error(err))
		if err := s.kv.Set(ctx, corruptKey, raw); err != nil {
			s.log.Error("failed to back up malformed bookmarks", logger.Error(err))
		}
		return model.DefaultCollection(), OriginRecovered
	}

	return model.NewCollection(bookmarks), OriginStored
}

// Save writes the whole collection, replacing the stored value.
func (s *BookmarkStore) Save(ctx context.Context, c *model.Collection) error {
	data, err := EncodeBookmarks(c.Bookmarks())
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := s.kv.Set(ctx, BookmarksKey, string(data)); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}
