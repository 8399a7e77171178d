package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		userID  int64
		title   string
		content string
		wantErr error
	}{
		{
			name:    "valid post",
			userID:  1,
			title:   "hello world",
			content: "first post",
			wantErr: nil,
		},
		{
			name:    "title at max length",
			userID:  1,
			title:   strings.Repeat("t", MaxTitleLength),
			content: "content",
			wantErr: nil,
		},
		{
			name:    "missing owner",
			userID:  0,
			title:   "hello",
			content: "content",
			wantErr: ErrInvalidID,
		},
		{
			name:    "empty title",
			userID:  1,
			title:   "",
			content: "content",
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "title too long",
			userID:  1,
			title:   strings.Repeat("t", MaxTitleLength+1),
			content: "content",
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "empty content",
			userID:  1,
			title:   "hello",
			content: "",
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := NewPost(tt.userID, tt.title, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, post)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, post.UserID)
			assert.Equal(t, tt.title, post.Title)
			assert.Equal(t, tt.content, post.Content)
			assert.False(t, post.CreatedAt.IsZero())
		})
	}
}

func TestPostTitleLengthCountsRunes(t *testing.T) {
	t.Parallel()

	// 50 multi-byte characters are within the limit even though the
	// byte length exceeds it.
	post, err := NewPost(1, strings.Repeat("é", MaxTitleLength), "content")
	require.NoError(t, err)
	assert.NotNil(t, post)
}
