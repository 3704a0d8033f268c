package service

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"sneakerfav/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindConflicting(ctx context.Context, excludeID uint, email, username string) (*model.User, error) {
	args := m.Called(ctx, excludeID, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) DeleteAndOrphanFavorites(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Find(ctx context.Context, userID uint, sneakerID string) (*model.Favorite, error) {
	args := m.Called(ctx, userID, sneakerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, favorite *model.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

// memStore backs both repositories with maps so row counts can be asserted.
type memStore struct {
	mu        sync.Mutex
	nextUser  uint
	nextFav   uint
	users     map[uint]model.User
	favorites map[uint]model.Favorite
}

func newMemStore() *memStore {
	return &memStore{users: map[uint]model.User{}, favorites: map[uint]model.Favorite{}}
}

type memUsers struct{ *memStore }

type memFavorites struct{ *memStore }

func (s memUsers) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextUser++
	user.ID = s.nextUser
	s.users[user.ID] = *user
	return nil
}

func (s memUsers) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s memUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s memUsers) FindConflicting(_ context.Context, excludeID uint, email, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID != excludeID && (u.Email == email || u.Username == username) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s memUsers) DeleteAndOrphanFavorites(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for fid, f := range s.favorites {
		if f.UserID != nil && *f.UserID == id {
			f.UserID = nil
			s.favorites[fid] = f
		}
	}
	delete(s.users, id)
	return nil
}

func (s memFavorites) Create(_ context.Context, favorite *model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFav++
	favorite.ID = s.nextFav
	s.favorites[favorite.ID] = *favorite
	return nil
}

func (s memFavorites) Find(_ context.Context, userID uint, sneakerID string) (*model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.UserID != nil && *f.UserID == userID && f.SneakerID == sneakerID {
			return &f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s memFavorites) Delete(_ context.Context, favorite *model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, favorite.ID)
	return nil
}

func (s memFavorites) ListByUser(_ context.Context, userID uint) ([]model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Favorite
	for _, f := range s.favorites {
		if f.UserID != nil && *f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) counts() (users, favorites, orphaned int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.UserID == nil {
			orphaned++
		}
	}
	return len(s.users), len(s.favorites), orphaned
}
