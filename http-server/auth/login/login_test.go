package login

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/policy"
	"bons-travail/internal/storage"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (string, *auth.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*auth.Session), args.Error(2)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Тест: успешный вход возвращает токен, страницы и поля роли
func TestLogin_Success(t *testing.T) {
	a := new(MockAuthenticator)
	a.On("Login", mock.Anything, "karim", "pw").
		Return("jwt-token", &auth.Session{Username: "karim", Role: storage.RoleMaintenance}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"karim","password":"pw"}`))
	rr := httptest.NewRecorder()
	Login(discard, a).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, []string{policy.PageMaintenance}, resp.Pages)
	assert.ElementsMatch(t, policy.EditableFields(storage.RoleMaintenance), resp.EditableFields)
}

// Тест: неизвестный пользователь и неверный пароль дают одинаковый ответ
func TestLogin_FailureIsUniform(t *testing.T) {
	a := new(MockAuthenticator)
	a.On("Login", mock.Anything, "ghost", "pw").Return("", nil, auth.ErrAuthFailure)
	a.On("Login", mock.Anything, "karim", "bad").Return("", nil, auth.ErrAuthFailure)

	bodies := make([]string, 0, 2)
	for _, body := range []string{`{"username":"ghost","password":"pw"}`, `{"username":"karim","password":"bad"}`} {
		rr := httptest.NewRecorder()
		Login(discard, a).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		bodies = append(bodies, rr.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Contains(t, bodies[0], "Identifiants invalides.")
}

func TestLogin_BadJSON(t *testing.T) {
	a := new(MockAuthenticator)

	rr := httptest.NewRecorder()
	Login(discard, a).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	a.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}
