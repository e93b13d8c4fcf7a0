package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Vote is the local viewer's vote on a bookmark.
type Vote string

const (
	VoteNone    Vote = ""
	VoteLike    Vote = "like"
	VoteDislike Vote = "dislike"
)

var ErrInvalidVote = errors.New("vote must be \"like\" or \"dislike\"")

// ParseVote parses user input into a like or dislike vote.
func ParseVote(s string) (Vote, error) {
	switch Vote(s) {
	case VoteLike, VoteDislike:
		return Vote(s), nil
	}
	return VoteNone, fmt.Errorf("%w: got %q", ErrInvalidVote, s)
}

// String returns "none" for VoteNone so it reads well in logs and output.
func (v Vote) String() string {
	if v == VoteNone {
		return "none"
	}
	return string(v)
}

// MarshalJSON writes VoteNone as null.
func (v Vote) MarshalJSON() ([]byte, error) {
	if v == VoteNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(v))
}

// UnmarshalJSON accepts null, "like" and "dislike".
func (v *Vote) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = VoteNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*v = VoteNone
		return nil
	}

	parsed, err := ParseVote(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ApplyVote returns b with the viewer's vote toggled.
// Voting the current vote again retracts it; voting the opposite vote
// retracts the old one first. Counters are not clamped.
func ApplyVote(b Bookmark, v Vote) Bookmark {
	if b.UserVote == v {
		b.adjust(v, -1)
		b.UserVote = VoteNone
		return b
	}

	if b.UserVote != VoteNone {
		b.adjust(b.UserVote, -1)
	}
	b.adjust(v, 1)
	b.UserVote = v
	return b
}

func (b *Bookmark) adjust(v Vote, delta int) {
	switch v {
	case VoteLike:
		b.Likes += delta
	case VoteDislike:
		b.Dislikes += delta
	}
}
