package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/platform/logger"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// CommentStore implements the store.CommentStore interface using a
// PostgreSQL database as the storage backend.
type CommentStore struct {
	db store.DBTX
}

// NewCommentStore creates a new PostgreSQL implementation of the
// CommentStore interface.
func NewCommentStore(db store.DBTX) *CommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &CommentStore{db: db}
}

// Ensure CommentStore implements store.CommentStore interface
var _ store.CommentStore = (*CommentStore)(nil)

const commentColumns = "id, post_id, user_id, reply_user_id, content, created_at"

// Create implements store.CommentStore.Create
func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContext(ctx)

	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO comments (post_id, user_id, reply_user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		comment.PostID,
		comment.UserID,
		comment.ReplyUserID,
		comment.Content,
		time.Now().UTC(),
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		log.Error("failed to create comment", "error", err, slog.Int64("post_id", comment.PostID))
		return fmt.Errorf("failed to create comment: %w", MapError(err))
	}

	return nil
}

// GetByID implements store.CommentStore.GetByID
func (s *CommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE id = $1`, commentColumns)

	comment, err := scanComment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(MapError(err), store.ErrNotFound) {
			return nil, store.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}

	return comment, nil
}

// List implements store.CommentStore.List
func (s *CommentStore) List(ctx context.Context, filter store.CommentFilter, page store.Page) ([]domain.Comment, int64, error) {
	log := logger.FromContext(ctx)

	where := ""
	countArgs := []any{}
	if filter.PostID != 0 {
		where = "WHERE post_id = $1"
		countArgs = append(countArgs, filter.PostID)
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM comments %s`, where)
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count comments", "error", err)
		return nil, 0, fmt.Errorf("failed to count comments: %w", MapError(err))
	}

	args := append([]any{}, countArgs...)
	args = append(args, page.Size, page.Offset())
	query := fmt.Sprintf(`
		SELECT %s FROM comments
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, commentColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list comments", "error", err)
		return nil, 0, fmt.Errorf("failed to list comments: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	comments, err := collectComments(rows)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListForPosts implements store.CommentStore.ListForPosts
func (s *CommentStore) ListForPosts(ctx context.Context, postIDs []int64) ([]domain.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(postIDs))
	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT %s FROM comments
		WHERE post_id IN (%s)
		ORDER BY created_at DESC, id DESC
	`, commentColumns, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for posts: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	return collectComments(rows)
}

// Update implements store.CommentStore.Update
func (s *CommentStore) Update(ctx context.Context, id int64, upd store.CommentUpdate) (*domain.Comment, error) {
	log := logger.FromContext(ctx)

	sets := []string{}
	args := []any{}

	if upd.Content != nil {
		args = append(args, *upd.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}

	if len(sets) == 0 {
		// Nothing to change; treat as a read so absent IDs still 404.
		return s.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE comments SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), commentColumns)

	comment, err := scanComment(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(MapError(err), store.ErrNotFound) {
			return nil, store.ErrCommentNotFound
		}
		log.Error("failed to update comment", "error", err, slog.Int64("comment_id", id))
		return nil, fmt.Errorf("failed to update comment: %w", MapError(err))
	}

	return comment, nil
}

// Delete implements store.CommentStore.Delete
func (s *CommentStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete comment", "error", err, slog.Int64("comment_id", id))
		return fmt.Errorf("failed to delete comment: %w", MapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrCommentNotFound
	}

	return nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.ReplyUserID,
		&comment.Content,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func collectComments(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]domain.Comment, error) {
	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}
