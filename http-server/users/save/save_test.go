package save

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bons-travail/internal/service/auth"
	"bons-travail/internal/storage"
)

type MockUserCreator struct {
	mock.Mock
}

func (m *MockUserCreator) CreateUser(ctx context.Context, username, password, role string) (*storage.UserInfo, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UserInfo), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func managerRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	return req.WithContext(auth.WithSession(req.Context(), &auth.Session{Username: "boss", Role: storage.RoleManager}))
}

// Тест: менеджер создаёт пользователя
func TestCreateUser_Success(t *testing.T) {
	creator := new(MockUserCreator)
	creator.On("CreateUser", mock.Anything, "nadia", "pw", storage.RoleQualite).
		Return(&storage.UserInfo{Username: "nadia", Role: storage.RoleQualite}, nil)

	rr := httptest.NewRecorder()
	CreateUser(discard, creator).ServeHTTP(rr, managerRequest(`{"username":"nadia","password":"pw","role":"qualite"}`))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
	creator.AssertExpectations(t)
}

// Тест: неизвестная роль отклоняется валидатором
func TestCreateUser_UnknownRole(t *testing.T) {
	creator := new(MockUserCreator)

	rr := httptest.NewRecorder()
	CreateUser(discard, creator).ServeHTTP(rr, managerRequest(`{"username":"nadia","password":"pw","role":"admin"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"Role":"oneof"`)
}

func TestCreateUser_Duplicate(t *testing.T) {
	creator := new(MockUserCreator)
	creator.On("CreateUser", mock.Anything, "nadia", "pw", storage.RoleQualite).Return(nil, storage.ErrDuplicateUser)

	rr := httptest.NewRecorder()
	CreateUser(discard, creator).ServeHTTP(rr, managerRequest(`{"username":"nadia","password":"pw","role":"qualite"}`))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

// Тест: без сессии менеджера - 401
func TestCreateUser_NoManager(t *testing.T) {
	creator := new(MockUserCreator)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{}`))
	req = req.WithContext(auth.WithSession(req.Context(), &auth.Session{Username: "p", Role: storage.RoleProduction}))

	rr := httptest.NewRecorder()
	CreateUser(discard, creator).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
