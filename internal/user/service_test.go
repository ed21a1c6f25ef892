package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, username, email, passwordHash string) (User, error) {
	args := m.Called(ctx, username, email, passwordHash)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(email string) (User, error) {
	args := m.Called(email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(id uint) (User, error) {
	args := m.Called(id)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "alice", "alice@example.com", mock.AnythingOfType("string")).
			Return(User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)

		token, u, err := svc.Register(ctx, "alice", "alice@example.com", "secret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice", u.Username)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "alice", "alice@example.com", mock.AnythingOfType("string")).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "alice", "other@example.com", mock.AnythingOfType("string")).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`))

		_, _, err := svc.Register(ctx, "alice", "other@example.com", "secret")
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "alice", "alice@example.com", mock.AnythingOfType("string")).
			Return(User{}, errors.New("db down"))

		_, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	hashed, _ := HashPassword("secret")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", "alice@example.com").
			Return(User{ID: 1, Username: "alice", Password: hashed}, nil)

		token, u, err := svc.Login(ctx, "alice@example.com", "secret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", "missing@example.com").
			Return(User{}, errors.New("sql: no rows in result set"))

		_, _, err := svc.Login(ctx, "missing@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", "alice@example.com").
			Return(User{ID: 1, Username: "alice", Password: hashed}, nil)

		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_GetByID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("FindByID", uint(7)).Return(User{ID: 7, Username: "carol"}, nil)

	u, err := svc.GetByID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, "carol", u.Username)
}
