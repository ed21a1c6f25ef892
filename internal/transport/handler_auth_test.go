package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopfront-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email, password string) (string, user.User, error) {
	args := m.Called(ctx, username, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, user.User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Register", mock.Anything, "alice", "alice@example.com", "secret").
			Return("jwt-token", user.User{ID: 1, Username: "alice"}, nil)

		req := httptest.NewRequest("POST", "/api/register",
			strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"secret"}`))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "jwt-token", resp["token"])

		// Session cookie is set
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "jwt-token", cookies[0].Value)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		req := httptest.NewRequest("POST", "/api/register",
			strings.NewReader(`{"username":"alice"}`))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register")
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		req := httptest.NewRequest("POST", "/api/register",
			strings.NewReader(`{"username":"alice","email":"not-an-email","password":"secret"}`))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Register", mock.Anything, "alice", "alice@example.com", "secret").
			Return("", user.User{}, user.ErrEmailExists)

		req := httptest.NewRequest("POST", "/api/register",
			strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"secret"}`))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "That email is taken")
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Register", mock.Anything, "alice", "alice@example.com", "secret").
			Return("", user.User{}, user.ErrUsernameExists)

		req := httptest.NewRequest("POST", "/api/register",
			strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"secret"}`))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "That username is taken")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, "alice@example.com", "secret").
			Return("jwt-token", user.User{ID: 1, Username: "alice"}, nil)

		req := httptest.NewRequest("POST", "/api/login",
			strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Login successful!")
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return("", user.User{}, user.ErrInvalidCredentials)

		req := httptest.NewRequest("POST", "/api/login",
			strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InternalError", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, "alice@example.com", "secret").
			Return("", user.User{}, errors.New("db down"))

		req := httptest.NewRequest("POST", "/api/login",
			strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(new(MockUserService))

	req := httptest.NewRequest("POST", "/api/logout", nil)
	w := httptest.NewRecorder()

	h.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
