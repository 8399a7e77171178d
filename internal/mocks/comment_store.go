package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// MockCommentStore is an in-memory implementation of store.CommentStore.
type MockCommentStore struct {
	mu       sync.Mutex
	comments map[int64]*domain.Comment
	nextID   int64

	// Fn overrides; when set they replace the in-memory behavior.
	CreateFn  func(ctx context.Context, comment *domain.Comment) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Comment, error)
	DeleteFn  func(ctx context.Context, id int64) error
}

var _ store.CommentStore = (*MockCommentStore)(nil)

// NewMockCommentStore creates an empty MockCommentStore.
func NewMockCommentStore() *MockCommentStore {
	return &MockCommentStore{
		comments: make(map[int64]*domain.Comment),
		nextID:   1,
	}
}

// Seed inserts a comment directly, bypassing validation. Returns the
// stored comment with its assigned ID.
func (m *MockCommentStore) Seed(comment domain.Comment) *domain.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()

	if comment.ID == 0 {
		comment.ID = m.nextID
	}
	if comment.ID >= m.nextID {
		m.nextID = comment.ID + 1
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	m.comments[comment.ID] = &comment
	return &comment
}

// Get returns the stored comment without copying, for assertions on state.
func (m *MockCommentStore) Get(id int64) *domain.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.comments[id]
}

// Create implements store.CommentStore.
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	comment.ID = m.nextID
	m.nextID++
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

// GetByID implements store.CommentStore.
func (m *MockCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	comment, ok := m.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

// List implements store.CommentStore.
func (m *MockCommentStore) List(ctx context.Context, filter store.CommentFilter, page store.Page) ([]domain.Comment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.matching(filter.PostID)

	total := int64(len(all))
	start := page.Offset()
	if start > len(all) {
		return nil, total, nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// ListForPosts implements store.CommentStore.
func (m *MockCommentStore) ListForPosts(ctx context.Context, postIDs []int64) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		want[id] = true
	}

	var comments []domain.Comment
	for _, comment := range m.matching(0) {
		if want[comment.PostID] {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

// matching returns comments filtered by post (0 = all), newest first.
// Callers must hold the mutex.
func (m *MockCommentStore) matching(postID int64) []domain.Comment {
	var all []domain.Comment
	for _, comment := range m.comments {
		if postID != 0 && comment.PostID != postID {
			continue
		}
		all = append(all, *comment)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

// Update implements store.CommentStore.
func (m *MockCommentStore) Update(ctx context.Context, id int64, upd store.CommentUpdate) (*domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comment, ok := m.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}

	if upd.Content != nil {
		comment.Content = *upd.Content
	}

	copied := *comment
	return &copied, nil
}

// Delete implements store.CommentStore.
func (m *MockCommentStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return store.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}
