package model

import (
	"strings"
	"time"
)

// DefaultCategory is assigned to bookmarks created without a category.
const DefaultCategory = "Uncategorized"

// Bookmark represents a saved URL with metadata and the local viewer's vote.
type Bookmark struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	UserVote    Vote      `json:"userVote"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL         string
	Title       string
	Description string
	Category    string
	Tags        []string
}

// NewBookmark creates a Bookmark with generated UUID, creation time and
// zeroed vote state. Blank titles fall back to the URL and blank categories
// to DefaultCategory.
func NewBookmark(params NewBookmarkParams) Bookmark {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = params.URL
	}

	category := strings.TrimSpace(params.Category)
	if category == "" {
		category = DefaultCategory
	}

	return Bookmark{
		ID:          generateUUID(),
		URL:         params.URL,
		Title:       title,
		Description: params.Description,
		Category:    category,
		Tags:        CleanTags(params.Tags),
		CreatedAt:   now().Truncate(time.Millisecond),
		Likes:       0,
		Dislikes:    0,
		UserVote:    VoteNone,
	}
}

// now is replaced in tests that need deterministic timestamps.
var now = time.Now
