package domain

import (
	"strings"
	"time"
)

// Memo is a free-form note. ID and CreatedAt are assigned by the store.
type Memo struct {
	ID        int64     `json:"fid"`
	Title     string    `json:"ftitle"`
	Content   string    `json:"fcontent"`
	CreatedAt time.Time `json:"fcreated_at"`
}

// MemoSummary is the reduced memo shape listed in memo statistics.
type MemoSummary struct {
	ID        int64     `json:"fid"`
	Title     string    `json:"ftitle"`
	CreatedAt time.Time `json:"fcreated_at"`
}

// MemoStats aggregates counts over the memo table.
type MemoStats struct {
	Total       int64
	Titled      int64
	WithContent int64
	Recent      []MemoSummary
}

// RecentMemoLimit is the number of memos reported in MemoStats.Recent.
const RecentMemoLimit = 5

// MemoFields holds the writable columns of a memo.
type MemoFields struct {
	Title   string
	Content string
}

// NewMemoFields validates a memo write: at least one of title or content
// must contain something other than whitespace.
func NewMemoFields(title, content string) (MemoFields, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return MemoFields{}, NewValidationError("", "title or content is required", ErrValidation)
	}
	return MemoFields{Title: title, Content: content}, nil
}
