package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/api/shared"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/service/auth"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// UserHandler handles user profile API requests.
type UserHandler struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	verifier       auth.PasswordVerifier
	validator      *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	passwordHasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
) *UserHandler {
	return &UserHandler{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		verifier:       verifier,
		validator:      newValidator(),
	}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := store.NewPage(pageFromRequest(r))

	users, total, err := h.userStore.List(r.Context(), page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list users", err)
		return
	}

	data := make([]UserResponse, 0, len(users))
	for i := range users {
		data = append(data, *userToResponse(&users[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CollectionEnvelope{
		Data: data,
		Meta: Meta{Pagination: NewPagination(page, len(data), total)},
	})
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Envelope{Data: userToResponse(user)})
}

// GetCurrentUser handles GET /user.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Envelope{Data: userToResponse(user)})
}

// UpdateCurrentUser handles PATCH /user.
// Only the supplied fields change; name and avatar are the only
// user-editable profile attributes.
func (h *UserHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorFields(err))
		return
	}

	user, err := h.userStore.Update(r.Context(), userID, store.UserUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Envelope{Data: userToResponse(user)})
}

// ChangePassword handles PUT /user/password.
// The old password is re-verified against the stored credential before
// any write happens; a verification failure is a field-level validation
// error, not a 401, since the request itself was authenticated.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorFields(err))
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithStatus(w, http.StatusUnauthorized)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to change password", err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.OldPassword); err != nil {
		shared.RespondWithValidationErrors(w, r, map[string][]string{
			"old_password": {"does not match the current password"},
		})
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to change password", err)
		return
	}

	if _, err := h.userStore.Update(r.Context(), userID, store.UserUpdate{
		HashedPassword: &hashed,
	}); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondNoContent(w)
}
