package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/api/shared"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/platform/logger"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// Relation names posts support in the `include` query parameter.
const (
	includeUser     = "user"
	includeComments = "comments"
)

// PostHandler handles post CRUD API requests.
type PostHandler struct {
	postStore    store.PostStore
	userStore    store.UserStore
	commentStore store.CommentStore
	validator    *validator.Validate
}

// NewPostHandler creates a new PostHandler with the given dependencies.
// The user and comment stores back the include-relation embedding.
func NewPostHandler(
	postStore store.PostStore,
	userStore store.UserStore,
	commentStore store.CommentStore,
) *PostHandler {
	return &PostHandler{
		postStore:    postStore,
		userStore:    userStore,
		commentStore: commentStore,
		validator:    newValidator(),
	}
}

// ListPosts handles GET /posts.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	h.listPosts(w, r, store.PostFilter{})
}

// ListUserPosts handles GET /user/posts, scoped to the acting user.
func (h *PostHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	h.listPosts(w, r, store.PostFilter{UserID: userID})
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request, filter store.PostFilter) {
	page := store.NewPage(pageFromRequest(r))
	includes := ParseIncludes(r, includeUser, includeComments)

	posts, total, err := h.postStore.List(r.Context(), filter, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list posts", err)
		return
	}

	data, err := h.presentPosts(r, posts, includes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list posts", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CollectionEnvelope{
		Data: data,
		Meta: Meta{Pagination: NewPagination(page, len(data), total)},
	})
}

// GetPost handles GET /posts/{id}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	includes := ParseIncludes(r, includeUser, includeComments)

	post, err := h.postStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	data, err := h.presentPosts(r, []domain.Post{*post}, includes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get post", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Envelope{Data: data[0]})
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorFields(err))
		return
	}

	post, err := domain.NewPost(userID, req.Title, req.Content)
	if err != nil {
		shared.RespondWithValidationErrors(w, r, map[string][]string{
			"title": {GetSafeErrorMessage(err)},
		})
		return
	}

	if err := h.postStore.Create(r.Context(), post); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	logger.FromContext(r.Context()).Info("post created",
		"post_id", post.ID, "user_id", userID)

	w.Header().Set("Location", fmt.Sprintf("/v1/posts/%d", post.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, Envelope{Data: postToResponse(post)})
}

// UpdatePost handles PUT /posts/{id}.
// Only the owner may update; a partial body updates only the supplied
// fields.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorFields(err))
		return
	}
	// Supplied-but-empty fields violate the create rules.
	fields := map[string][]string{}
	if req.Title != nil && *req.Title == "" {
		fields["title"] = append(fields["title"], "is required")
	}
	if req.Content != nil && *req.Content == "" {
		fields["content"] = append(fields["content"], "is required")
	}
	if len(fields) > 0 {
		shared.RespondWithValidationErrors(w, r, fields)
		return
	}

	post, err := h.postStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if !domain.CanMutate(userID, post.UserID) {
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
			GetSafeErrorMessage(domain.ErrForbidden), domain.ErrForbidden)
		return
	}

	if _, err := h.postStore.Update(r.Context(), id, store.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	}); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondNoContent(w)
}

// DeletePost handles DELETE /posts/{id}. Only the owner may delete.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if !domain.CanMutate(userID, post.UserID) {
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
			GetSafeErrorMessage(domain.ErrForbidden), domain.ErrForbidden)
		return
	}

	if err := h.postStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	logger.FromContext(r.Context()).Info("post deleted",
		"post_id", id, "user_id", userID)

	shared.RespondNoContent(w)
}

// presentPosts maps posts to wire form, embedding requested relations.
// Relation loads are batched across the whole page to avoid per-post
// queries.
func (h *PostHandler) presentPosts(r *http.Request, posts []domain.Post, includes Includes) ([]PostResponse, error) {
	data := make([]PostResponse, 0, len(posts))
	for i := range posts {
		data = append(data, *postToResponse(&posts[i]))
	}

	if includes.Has(includeUser) {
		ids := make([]int64, 0, len(posts))
		seen := make(map[int64]bool, len(posts))
		for _, post := range posts {
			if !seen[post.UserID] {
				seen[post.UserID] = true
				ids = append(ids, post.UserID)
			}
		}

		users, err := h.userStore.ListByIDs(r.Context(), ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load post authors: %w", err)
		}

		byID := make(map[int64]*UserResponse, len(users))
		for i := range users {
			byID[users[i].ID] = userToResponse(&users[i])
		}
		for i := range data {
			data[i].User = byID[data[i].UserID]
		}
	}

	if includes.Has(includeComments) {
		ids := make([]int64, 0, len(posts))
		for _, post := range posts {
			ids = append(ids, post.ID)
		}

		comments, err := h.commentStore.ListForPosts(r.Context(), ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load post comments: %w", err)
		}

		byPost := make(map[int64][]CommentResponse)
		for i := range comments {
			byPost[comments[i].PostID] = append(byPost[comments[i].PostID], *commentToResponse(&comments[i]))
		}
		for i := range data {
			data[i].Comments = byPost[data[i].ID]
		}
	}

	return data, nil
}
