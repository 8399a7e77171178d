package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the maximum length of a post title, in characters.
const MaxTitleLength = 50

// Post is an article written by a user. The owning UserID is set at
// creation and never changes; only the owner may update or delete the
// post.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPost creates a new Post owned by the given user.
// The ID is assigned by the store on creation.
func NewPost(userID int64, title, content string) (*Post, error) {
	if userID <= 0 {
		return nil, ErrInvalidID
	}

	now := time.Now().UTC()
	post := &Post{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}

	if utf8.RuneCountInString(p.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if p.Content == "" {
		return ErrEmptyContent
	}

	return nil
}
