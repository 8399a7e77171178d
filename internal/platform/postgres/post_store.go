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

// PostStore implements the store.PostStore interface using a PostgreSQL
// database as the storage backend.
type PostStore struct {
	db store.DBTX
}

// NewPostStore creates a new PostgreSQL implementation of the PostStore
// interface.
func NewPostStore(db store.DBTX) *PostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostStore{db: db}
}

// Ensure PostStore implements store.PostStore interface
var _ store.PostStore = (*PostStore)(nil)

const postColumns = "id, user_id, title, content, created_at, updated_at"

// Create implements store.PostStore.Create
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContext(ctx)

	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO posts (user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, query,
		post.UserID,
		post.Title,
		post.Content,
		now,
		now,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		log.Error("failed to create post", "error", err, slog.Int64("user_id", post.UserID))
		return fmt.Errorf("failed to create post: %w", MapError(err))
	}

	return nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)

	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(MapError(err), store.ErrNotFound) {
			return nil, store.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return post, nil
}

// List implements store.PostStore.List
func (s *PostStore) List(ctx context.Context, filter store.PostFilter, page store.Page) ([]domain.Post, int64, error) {
	log := logger.FromContext(ctx)

	where := ""
	countArgs := []any{}
	if filter.UserID != 0 {
		where = "WHERE user_id = $1"
		countArgs = append(countArgs, filter.UserID)
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM posts %s`, where)
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count posts", "error", err)
		return nil, 0, fmt.Errorf("failed to count posts: %w", MapError(err))
	}

	args := append([]any{}, countArgs...)
	args = append(args, page.Size, page.Offset())
	query := fmt.Sprintf(`
		SELECT %s FROM posts
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, postColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list posts", "error", err)
		return nil, 0, fmt.Errorf("failed to list posts: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, total, nil
}

// Update implements store.PostStore.Update
func (s *PostStore) Update(ctx context.Context, id int64, upd store.PostUpdate) (*domain.Post, error) {
	log := logger.FromContext(ctx)

	sets := []string{"updated_at = $1"}
	args := []any{time.Now().UTC()}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		addSet("title", *upd.Title)
	}
	if upd.Content != nil {
		addSet("content", *upd.Content)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE posts SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), postColumns)

	post, err := scanPost(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(MapError(err), store.ErrNotFound) {
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to update post", "error", err, slog.Int64("post_id", id))
		return nil, fmt.Errorf("failed to update post: %w", MapError(err))
	}

	return post, nil
}

// Delete implements store.PostStore.Delete
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete post", "error", err, slog.Int64("post_id", id))
		return fmt.Errorf("failed to delete post: %w", MapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrPostNotFound
	}

	return nil
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
