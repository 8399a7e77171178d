package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		postID      int64
		userID      int64
		replyUserID int64
		content     string
		wantErr     error
	}{
		{
			name:    "top-level comment",
			postID:  1,
			userID:  2,
			content: "nice post",
		},
		{
			name:        "reply comment",
			postID:      1,
			userID:      2,
			replyUserID: 3,
			content:     "agreed",
		},
		{
			name:    "missing post",
			postID:  0,
			userID:  2,
			content: "nice post",
			wantErr: ErrInvalidID,
		},
		{
			name:    "missing author",
			postID:  1,
			userID:  0,
			content: "nice post",
			wantErr: ErrInvalidID,
		},
		{
			name:    "empty content",
			postID:  1,
			userID:  2,
			content: "",
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment, err := NewComment(tt.postID, tt.userID, tt.replyUserID, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, comment)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.postID, comment.PostID)
			assert.Equal(t, tt.userID, comment.UserID)
			assert.Equal(t, tt.replyUserID, comment.ReplyUserID)
			assert.Equal(t, tt.content, comment.Content)
		})
	}
}

func TestCanMutate(t *testing.T) {
	t.Parallel()

	assert.True(t, CanMutate(1, 1))
	assert.False(t, CanMutate(1, 2))
	assert.False(t, CanMutate(2, 1))
	assert.False(t, CanMutate(0, 0))
	assert.False(t, CanMutate(-1, -1))
}
