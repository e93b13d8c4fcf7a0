package model

import "time"

// DefaultBookmarks returns the dataset used when nothing has been stored yet.
func DefaultBookmarks() []Bookmark {
	return []Bookmark{
		{
			ID:          "1",
			URL:         "https://github.com",
			Title:       "GitHub",
			Description: "The largest code hosting platform, essential for developers.",
			Category:    "Developer Tools",
			Tags:        []string{"code", "Git", "open source"},
			CreatedAt:   time.UnixMilli(1715000000000).UTC(),
			Likes:       124,
			Dislikes:    2,
			UserVote:    VoteLike,
		},
		{
			ID:          "2",
			URL:         "https://dribbble.com",
			Title:       "Dribbble",
			Description: "Design inspiration community showcasing top design work.",
			Category:    "Design Inspiration",
			Tags:        []string{"UI", "UX", "design"},
			CreatedAt:   time.UnixMilli(1715000100000).UTC(),
			Likes:       89,
			Dislikes:    5,
			UserVote:    VoteNone,
		},
		{
			ID:          "3",
			URL:         "https://developer.mozilla.org",
			Title:       "MDN Web Docs",
			Description: "The authoritative documentation for web technologies.",
			Category:    "Learning",
			Tags:        []string{"HTML", "CSS", "JS", "docs"},
			CreatedAt:   time.UnixMilli(1715000200000).UTC(),
			Likes:       256,
			Dislikes:    0,
			UserVote:    VoteLike,
		},
		{
			ID:          "4",
			URL:         "https://chatgpt.com",
			Title:       "ChatGPT",
			Description: "An advanced AI chat assistant developed by OpenAI.",
			Category:    "Artificial Intelligence",
			Tags:        []string{"AI", "LLM", "assistant"},
			CreatedAt:   time.UnixMilli(1715000300000).UTC(),
			Likes:       999,
			Dislikes:    12,
			UserVote:    VoteNone,
		},
	}
}
