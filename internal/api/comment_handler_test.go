package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/mocks"
)

type commentHandlerFixture struct {
	users    *mocks.MockUserStore
	posts    *mocks.MockPostStore
	comments *mocks.MockCommentStore
	handler  *CommentHandler
}

func newCommentHandlerFixture() *commentHandlerFixture {
	f := &commentHandlerFixture{
		users:    mocks.NewMockUserStore(),
		posts:    mocks.NewMockPostStore(),
		comments: mocks.NewMockCommentStore(),
	}
	f.handler = NewCommentHandler(f.comments, f.posts, f.users)
	return f
}

func TestCommentHandler_ListPostComments(t *testing.T) {
	t.Parallel()

	t.Run("pages comments newest first with embedded authors", func(t *testing.T) {
		t.Parallel()
		f := newCommentHandlerFixture()
		author := f.users.Seed(domain.User{Email: "author@example.com", Name: "Alice"})
		post := f.posts.Seed(domain.Post{UserID: author.ID, Title: "Post", Content: "body"})

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 3; i++ {
			f.comments.Seed(domain.Comment{
				PostID:    post.ID,
				UserID:    author.ID,
				Content:   "comment " + strconv.Itoa(i),
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/posts/1/comments?include=user", nil)
		req = withPathParam(req, "id", strconv.FormatInt(post.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.ListPostComments(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Data []CommentResponse `json:"data"`
			Meta Meta              `json:"meta"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Data, 3)
		assert.Equal(t, "comment 2", resp.Data[0].Content)
		assert.Equal(t, int64(3), resp.Meta.Pagination.Total)
		for _, c := range resp.Data {
			require.NotNil(t, c.User)
			assert.Equal(t, "Alice", c.User.Name)
		}
	})

	t.Run("unknown post is a bare 404", func(t *testing.T) {
		t.Parallel()
		f := newCommentHandlerFixture()

		req := httptest.NewRequest(http.MethodGet, "/v1/posts/999/comments", nil)
		req = withPathParam(req, "id", "999")
		rr := httptest.NewRecorder()
		f.handler.ListPostComments(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Zero(t, rr.Body.Len())
	})
}

func TestCommentHandler_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("creates a top-level comment", func(t *testing.T) {
		t.Parallel()
		f := newCommentHandlerFixture()
		author := f.users.Seed(domain.User{Email: "author@example.com"})
		post := f.posts.Seed(domain.Post{UserID: author.ID, Title: "Post", Content: "body"})

		body := `{"content":"Nice post."}`
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/1/comments", bytes.NewBufferString(body))
		req = authenticated(req, author.ID)
		req = withPathParam(req, "id", strconv.FormatInt(post.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.CreateComment(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp struct {
			Data CommentResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Nice post.", resp.Data.Content)
		assert.Equal(t, post.ID, resp.Data.PostID)
		assert.Zero(t, resp.Data.ReplyUserID)
	})

	t.Run("creates a reply", func(t *testing.T) {
		t.Parallel()
		f := newCommentHandlerFixture()
		author := f.users.Seed(domain.User{Email: "author@example.com"})
		replyTo := f.users.Seed(domain.User{Email: "other@example.com"})
		post := f.posts.Seed(domain.Post{UserID: author.ID, Title: "Post", Content: "body"})

		body := `{"content":"Agreed.","reply_user_id":` + strconv.FormatInt(replyTo.ID, 10) + `}`
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/1/comments", bytes.NewBufferString(body))
		req = authenticated(req, author.ID)
		req = withPathParam(req, "id", strconv.FormatInt(post.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.CreateComment(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp struct {
			Data CommentResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, replyTo.ID, resp.Data.ReplyUserID)
	})

	t.Run("unknown post is a bare 404", func(t *testing.T) {
		t.Parallel()
		f := newCommentHandlerFixture()

		body := `{"content":"Into the void."}`
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/999/comments", bytes.NewBufferString(body))
		req = authenticated(req, 1)
		req = withPathParam(req, "id", "999")
		rr := httptest.NewRecorder()
		f.handler.CreateComment(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		f := newCommentHandlerFixture()

		req := httptest.NewRequest(http.MethodPost, "/v1/posts/1/comments", bytes.NewBufferString(`{}`))
		req = authenticated(req, 1)
		req = withPathParam(req, "id", "1")
		rr := httptest.NewRecorder()
		f.handler.CreateComment(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		fields := decodeValidationErrors(t, rr.Body)
		assert.Contains(t, fields, "content")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		f := newCommentHandlerFixture()

		body := `{"content":"Hi."}`
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/1/comments", bytes.NewBufferString(body))
		req = withPathParam(req, "id", "1")
		rr := httptest.NewRecorder()
		f.handler.CreateComment(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestCommentHandler_UpdateComment(t *testing.T) {
	t.Parallel()

	seed := func() (*commentHandlerFixture, *domain.Comment) {
		f := newCommentHandlerFixture()
		author := f.users.Seed(domain.User{Email: "author@example.com"})
		post := f.posts.Seed(domain.Post{UserID: author.ID, Title: "Post", Content: "body"})
		comment := f.comments.Seed(domain.Comment{
			PostID:  post.ID,
			UserID:  author.ID,
			Content: "original",
		})
		return f, comment
	}

	t.Run("author updates", func(t *testing.T) {
		t.Parallel()
		f, comment := seed()

		body := `{"content":"edited"}`
		req := httptest.NewRequest(http.MethodPut, "/v1/comments/1", bytes.NewBufferString(body))
		req = authenticated(req, comment.UserID)
		req = withPathParam(req, "id", strconv.FormatInt(comment.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.UpdateComment(rr, req)

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "edited", f.comments.Get(comment.ID).Content)
	})

	t.Run("non-author is a bare 403", func(t *testing.T) {
		t.Parallel()
		f, comment := seed()

		body := `{"content":"hijacked"}`
		req := httptest.NewRequest(http.MethodPut, "/v1/comments/1", bytes.NewBufferString(body))
		req = authenticated(req, comment.UserID+1)
		req = withPathParam(req, "id", strconv.FormatInt(comment.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.UpdateComment(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "original", f.comments.Get(comment.ID).Content)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		f, comment := seed()

		req := httptest.NewRequest(http.MethodPut, "/v1/comments/1", bytes.NewBufferString(`{"content":""}`))
		req = authenticated(req, comment.UserID)
		req = withPathParam(req, "id", strconv.FormatInt(comment.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.UpdateComment(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		fields := decodeValidationErrors(t, rr.Body)
		assert.Contains(t, fields, "content")
	})

	t.Run("unknown comment is a bare 404", func(t *testing.T) {
		t.Parallel()
		f, _ := seed()

		body := `{"content":"edited"}`
		req := httptest.NewRequest(http.MethodPut, "/v1/comments/999", bytes.NewBufferString(body))
		req = authenticated(req, 1)
		req = withPathParam(req, "id", "999")
		rr := httptest.NewRecorder()
		f.handler.UpdateComment(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCommentHandler_DeleteComment(t *testing.T) {
	t.Parallel()

	seed := func() (*commentHandlerFixture, *domain.Comment) {
		f := newCommentHandlerFixture()
		author := f.users.Seed(domain.User{Email: "author@example.com"})
		post := f.posts.Seed(domain.Post{UserID: author.ID, Title: "Post", Content: "body"})
		comment := f.comments.Seed(domain.Comment{
			PostID:  post.ID,
			UserID:  author.ID,
			Content: "doomed",
		})
		return f, comment
	}

	t.Run("author deletes", func(t *testing.T) {
		t.Parallel()
		f, comment := seed()

		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/1", nil)
		req = authenticated(req, comment.UserID)
		req = withPathParam(req, "id", strconv.FormatInt(comment.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.DeleteComment(rr, req)

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Nil(t, f.comments.Get(comment.ID))
	})

	t.Run("non-author is a bare 403", func(t *testing.T) {
		t.Parallel()
		f, comment := seed()

		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/1", nil)
		req = authenticated(req, comment.UserID+1)
		req = withPathParam(req, "id", strconv.FormatInt(comment.ID, 10))
		rr := httptest.NewRecorder()
		f.handler.DeleteComment(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.NotNil(t, f.comments.Get(comment.ID))
	})

	t.Run("unknown comment is a bare 404", func(t *testing.T) {
		t.Parallel()
		f, _ := seed()

		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/999", nil)
		req = authenticated(req, 1)
		req = withPathParam(req, "id", "999")
		rr := httptest.NewRecorder()
		f.handler.DeleteComment(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
