package domain

import "time"

// Comment is a user's comment on a post. ReplyUserID identifies the
// user being replied to; zero means a top-level comment.
type Comment struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	UserID      int64     `json:"user_id"`
	ReplyUserID int64     `json:"reply_user_id,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewComment creates a new Comment on the given post, authored by the
// given user. replyUserID may be zero for a top-level comment.
func NewComment(postID, userID, replyUserID int64, content string) (*Comment, error) {
	if postID <= 0 || userID <= 0 {
		return nil, ErrInvalidID
	}

	comment := &Comment{
		PostID:      postID,
		UserID:      userID,
		ReplyUserID: replyUserID,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.Content == "" {
		return ErrEmptyContent
	}
	return nil
}
