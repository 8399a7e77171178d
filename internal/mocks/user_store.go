package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/store"
)

// MockUserStore is an in-memory implementation of store.UserStore.
// It enforces the same contract as the PostgreSQL implementation
// (email uniqueness among non-deleted users, not-found sentinels) so
// handlers can be tested against a faithful fake.
type MockUserStore struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64

	// Fn overrides; when set they replace the in-memory behavior.
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, id int64, upd store.UserUpdate) (*domain.User, error)
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

// Seed inserts a user directly, bypassing validation. Returns the
// stored user with its assigned ID.
func (m *MockUserStore) Seed(user domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == 0 {
		user.ID = m.nextID
	}
	if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.users[user.ID] = &user
	return &user
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email && existing.DeletedAt == nil {
			return store.ErrEmailExists
		}
	}

	user.ID = m.nextID
	m.nextID++
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email && user.DeletedAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements store.UserStore.
func (m *MockUserStore) List(ctx context.Context, page store.Page) ([]domain.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []domain.User
	for _, user := range m.users {
		if user.DeletedAt == nil {
			all = append(all, *user)
		}
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

// ListByIDs implements store.UserStore.
func (m *MockUserStore) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []domain.User
	for _, id := range ids {
		if user, ok := m.users[id]; ok && user.DeletedAt == nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

// Update implements store.UserStore.
func (m *MockUserStore) Update(ctx context.Context, id int64, upd store.UserUpdate) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, store.ErrUserNotFound
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}
	if upd.HashedPassword != nil {
		user.HashedPassword = *upd.HashedPassword
	}
	user.UpdatedAt = time.Now().UTC()

	copied := *user
	return &copied, nil
}

// Delete implements store.UserStore.
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return store.ErrUserNotFound
	}
	now := time.Now().UTC()
	user.DeletedAt = &now
	return nil
}
