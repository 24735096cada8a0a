package domain

import (
	"strings"
	"time"
)

// DefaultAuthor is written to br_reg_id when neither the caller nor the
// configuration supplies an author.
const DefaultAuthor = "user"

// Post is a single board entry. Seq and RegDate are assigned by the store
// at creation and never change afterwards.
type Post struct {
	Seq      int64     `json:"br_seq"`
	Category string    `json:"br_cd"`
	Title    string    `json:"br_title"`
	Content  string    `json:"br_content"`
	File     string    `json:"br_file"`
	RegID    string    `json:"br_reg_id"`
	RegDate  time.Time `json:"br_reg_dt"`
}

// PostFields holds the writable columns of a post. Absent optional values
// are empty strings so the stored row never carries NULLs.
type PostFields struct {
	Category string
	Title    string
	Content  string
	File     string
	RegID    string
}

// NewPostFields builds the fields for a post insert. The category is
// required; an empty author falls back to defaultAuthor, then DefaultAuthor.
func NewPostFields(category, title, content, file, regID, defaultAuthor string) (PostFields, error) {
	if strings.TrimSpace(category) == "" {
		return PostFields{}, NewValidationError("br_cd", "is required", ErrValidation)
	}
	if regID == "" {
		regID = defaultAuthor
	}
	if regID == "" {
		regID = DefaultAuthor
	}
	return PostFields{
		Category: category,
		Title:    title,
		Content:  content,
		File:     file,
		RegID:    regID,
	}, nil
}

// PostUpdate holds the columns an update may change.
type PostUpdate struct {
	Title   string
	Content string
	File    string
}
