package api

import (
	"time"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"omitempty,max=50"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       int64  `json:"user_id"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// UpdateUserRequest defines the payload for the PATCH /user endpoint.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name   *string `json:"name"   validate:"omitempty,max=50"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

// ChangePasswordRequest defines the payload for the PUT /user/password
// endpoint. The old password is re-verified against the stored
// credential, and the new password must differ from the old one and
// match its confirmation.
type ChangePasswordRequest struct {
	OldPassword          string `json:"old_password"          validate:"required"`
	Password             string `json:"password"              validate:"required,nefield=OldPassword"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// CreatePostRequest defines the payload for the POST /posts endpoint.
type CreatePostRequest struct {
	Title   string `json:"title"   validate:"required,max=50"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest defines the payload for the PUT /posts/{id}
// endpoint. Nil fields are left unchanged; supplied fields must still
// satisfy the create rules (handlers reject supplied-but-empty values).
type UpdatePostRequest struct {
	Title   *string `json:"title"   validate:"omitempty,max=50"`
	Content *string `json:"content"`
}

// CreateCommentRequest defines the payload for the POST
// /posts/{id}/comments endpoint. ReplyUserID is optional; zero means a
// top-level comment.
type CreateCommentRequest struct {
	Content     string `json:"content"       validate:"required"`
	ReplyUserID int64  `json:"reply_user_id" validate:"omitempty,gt=0"`
}

// UpdateCommentRequest defines the payload for the PUT /comments/{id}
// endpoint.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// UserResponse represents the wire form of a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostResponse represents the wire form of a post, optionally carrying
// included relations.
type PostResponse struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	User      *UserResponse     `json:"user,omitempty"`
	Comments  []CommentResponse `json:"comments,omitempty"`
}

// CommentResponse represents the wire form of a comment.
type CommentResponse struct {
	ID          int64         `json:"id"`
	PostID      int64         `json:"post_id"`
	UserID      int64         `json:"user_id"`
	ReplyUserID int64         `json:"reply_user_id,omitempty"`
	Content     string        `json:"content"`
	CreatedAt   time.Time     `json:"created_at"`
	User        *UserResponse `json:"user,omitempty"`
}

// Envelope wraps a single item for the response body.
type Envelope struct {
	Data interface{} `json:"data"`
}

// CollectionEnvelope wraps a collection plus pagination metadata.
type CollectionEnvelope struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// Meta holds collection metadata.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the position of a page within a collection.
type Pagination struct {
	Total       int64 `json:"total"`
	Count       int   `json:"count"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// NewPagination computes pagination metadata for one page of a
// collection of the given total size.
func NewPagination(page store.Page, count int, total int64) Pagination {
	return Pagination{
		Total:       total,
		Count:       count,
		PerPage:     page.Size,
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(total),
	}
}

func userToResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func postToResponse(post *domain.Post) *PostResponse {
	return &PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func commentToResponse(comment *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:          comment.ID,
		PostID:      comment.PostID,
		UserID:      comment.UserID,
		ReplyUserID: comment.ReplyUserID,
		Content:     comment.Content,
		CreatedAt:   comment.CreatedAt,
	}
}
