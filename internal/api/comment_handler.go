package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/api/shared"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/platform/logger"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// CommentHandler handles comment API requests.
type CommentHandler struct {
	commentStore store.CommentStore
	postStore    store.PostStore
	userStore    store.UserStore
	validator    *validator.Validate
}

// NewCommentHandler creates a new CommentHandler with the given
// dependencies.
func NewCommentHandler(
	commentStore store.CommentStore,
	postStore store.PostStore,
	userStore store.UserStore,
) *CommentHandler {
	return &CommentHandler{
		commentStore: commentStore,
		postStore:    postStore,
		userStore:    userStore,
		validator:    newValidator(),
	}
}

// ListPostComments handles GET /posts/{id}/comments.
func (h *CommentHandler) ListPostComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	page := store.NewPage(pageFromRequest(r))
	includes := ParseIncludes(r, includeUser)

	// The collection 404s when the parent post does not exist.
	if _, err := h.postStore.GetByID(r.Context(), postID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	comments, total, err := h.commentStore.List(r.Context(), store.CommentFilter{PostID: postID}, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list comments", err)
		return
	}

	data, err := h.presentComments(r, comments, includes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list comments", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CollectionEnvelope{
		Data: data,
		Meta: Meta{Pagination: NewPagination(page, len(data), total)},
	})
}

// CreateComment handles POST /posts/{id}/comments.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorFields(err))
		return
	}

	if _, err := h.postStore.GetByID(r.Context(), postID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	comment, err := domain.NewComment(postID, userID, req.ReplyUserID, req.Content)
	if err != nil {
		shared.RespondWithValidationErrors(w, r, map[string][]string{
			"content": {GetSafeErrorMessage(err)},
		})
		return
	}

	if err := h.commentStore.Create(r.Context(), comment); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	logger.FromContext(r.Context()).Info("comment created",
		"comment_id", comment.ID, "post_id", postID, "user_id", userID)

	shared.RespondWithJSON(w, r, http.StatusCreated, Envelope{Data: commentToResponse(comment)})
}

// UpdateComment handles PUT /comments/{id}. Only the author may update.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorFields(err))
		return
	}

	comment, err := h.commentStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if !domain.CanMutate(userID, comment.UserID) {
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
			GetSafeErrorMessage(domain.ErrForbidden), domain.ErrForbidden)
		return
	}

	if _, err := h.commentStore.Update(r.Context(), id, store.CommentUpdate{
		Content: &req.Content,
	}); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondNoContent(w)
}

// DeleteComment handles DELETE /comments/{id}. Only the author may
// delete.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.commentStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if !domain.CanMutate(userID, comment.UserID) {
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
			GetSafeErrorMessage(domain.ErrForbidden), domain.ErrForbidden)
		return
	}

	if err := h.commentStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	logger.FromContext(r.Context()).Info("comment deleted",
		"comment_id", id, "user_id", userID)

	shared.RespondNoContent(w)
}

// presentComments maps comments to wire form, embedding the author when
// requested. Author loads are batched across the page.
func (h *CommentHandler) presentComments(r *http.Request, comments []domain.Comment, includes Includes) ([]CommentResponse, error) {
	data := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, *commentToResponse(&comments[i]))
	}

	if includes.Has(includeUser) {
		ids := make([]int64, 0, len(comments))
		seen := make(map[int64]bool, len(comments))
		for _, comment := range comments {
			if !seen[comment.UserID] {
				seen[comment.UserID] = true
				ids = append(ids, comment.UserID)
			}
		}

		users, err := h.userStore.ListByIDs(r.Context(), ids)
		if err != nil {
			return nil, err
		}

		byID := make(map[int64]*UserResponse, len(users))
		for i := range users {
			byID[users[i].ID] = userToResponse(&users[i])
		}
		for i := range data {
			data[i].User = byID[data[i].UserID]
		}
	}

	return data, nil
}
