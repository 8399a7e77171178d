package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// MockPostStore is an in-memory implementation of store.PostStore.
type MockPostStore struct {
	mu     sync.Mutex
	posts  map[int64]*domain.Post
	nextID int64

	// Fn overrides; when set they replace the in-memory behavior.
	CreateFn  func(ctx context.Context, post *domain.Post) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Post, error)
	ListFn    func(ctx context.Context, filter store.PostFilter, page store.Page) ([]domain.Post, int64, error)
	UpdateFn  func(ctx context.Context, id int64, upd store.PostUpdate) (*domain.Post, error)
	DeleteFn  func(ctx context.Context, id int64) error
}

var _ store.PostStore = (*MockPostStore)(nil)

// NewMockPostStore creates an empty MockPostStore.
func NewMockPostStore() *MockPostStore {
	return &MockPostStore{
		posts:  make(map[int64]*domain.Post),
		nextID: 1,
	}
}

// Seed inserts a post directly, bypassing validation. Returns the
// stored post with its assigned ID.
func (m *MockPostStore) Seed(post domain.Post) *domain.Post {
	m.mu.Lock()
	defer m.mu.Unlock()

	if post.ID == 0 {
		post.ID = m.nextID
	}
	if post.ID >= m.nextID {
		m.nextID = post.ID + 1
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	m.posts[post.ID] = &post
	return &post
}

// Get returns the stored post without copying, for assertions on state.
func (m *MockPostStore) Get(id int64) *domain.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts[id]
}

// Create implements store.PostStore.
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	post.ID = m.nextID
	m.nextID++
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

// GetByID implements store.PostStore.
func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

// List implements store.PostStore.
func (m *MockPostStore) List(ctx context.Context, filter store.PostFilter, page store.Page) ([]domain.Post, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var all []domain.Post
	for _, post := range m.posts {
		if filter.UserID != 0 && post.UserID != filter.UserID {
			continue
		}
		all = append(all, *post)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

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

// Update implements store.PostStore.
func (m *MockPostStore) Update(ctx context.Context, id int64, upd store.PostUpdate) (*domain.Post, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}

	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	post.UpdatedAt = time.Now().UTC()

	copied := *post
	return &copied, nil
}

// Delete implements store.PostStore.
func (m *MockPostStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return store.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}
