package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bons-travail/internal/storage"
)

const (
	SchemeBcrypt = "bcrypt"
	// SchemeSHA256 is the unsalted hex digest of the first version. Weak, kept
	// only to stay compatible with existing users files.
	SchemeSHA256 = "sha256"
)

var (
	// ErrAuthFailure is returned for an unknown user and a wrong password alike.
	ErrAuthFailure     = errors.New("Identifiants invalides.")
	ErrBootstrapClosed = errors.New("un utilisateur existe déjà, création initiale fermée")
)

type UserStorage interface {
	CreateUser(ctx context.Context, u storage.User) error
	GetUser(ctx context.Context, username string) (*storage.User, error)
	ListUsers(ctx context.Context) ([]storage.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type Config struct {
	Scheme     string
	BcryptCost int
	JWTSecret  string
	TokenTTL   time.Duration
}

type AuthService struct {
	storage    UserStorage
	scheme     string
	bcryptCost int
	secret     []byte
	ttl        time.Duration
	dummyHash  string

	// сериализует создание первого менеджера
	bootstrapMu sync.Mutex
}

func NewAuthService(storage UserStorage, cfg Config) (*AuthService, error) {
	const op = "service.auth.NewAuthService"

	scheme := strings.ToLower(cfg.Scheme)
	if scheme == "" {
		scheme = SchemeBcrypt
	}
	if scheme != SchemeBcrypt && scheme != SchemeSHA256 {
		return nil, fmt.Errorf("%s: неизвестная схема хеширования %q", op, cfg.Scheme)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%s: пустой jwt secret", op)
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	s := &AuthService{
		storage:    storage,
		scheme:     scheme,
		bcryptCost: cost,
		secret:     []byte(cfg.JWTSecret),
		ttl:        ttl,
	}

	dummy, err := s.Hash("bons-travail")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.dummyHash = dummy

	return s, nil
}

// Hash hashes password with the configured scheme.
func (s *AuthService) Hash(password string) (string, error) {
	if s.scheme == SchemeSHA256 {
		return sha256Hex(password), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isLegacyHash(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

// checkPassword accepts bcrypt hashes and legacy sha256 hex digests.
func checkPassword(hash, password string) bool {
	if isLegacyHash(hash) {
		return subtle.ConstantTimeCompare([]byte(hash), []byte(sha256Hex(password))) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Verify returns the user when password matches.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*storage.User, error) {
	const op = "service.auth.Verify"

	u, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// то же время ответа, что и при неверном пароле
			checkPassword(s.dummyHash, password)
			return nil, ErrAuthFailure
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(u.PasswordHash, password) {
		return nil, ErrAuthFailure
	}

	return u, nil
}

func (s *AuthService) CreateUser(ctx context.Context, username, password, role string) (*storage.UserInfo, error) {
	const op = "service.auth.CreateUser"

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, storage.NewValidationError("username", "обязательное поле")
	}
	if password == "" {
		return nil, storage.NewValidationError("password", "обязательное поле")
	}
	if !storage.IsRole(role) {
		return nil, storage.NewValidationError("role", "неизвестная роль: "+role)
	}

	hash, err := s.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u := storage.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := s.storage.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info := u.Info()
	return &info, nil
}

func (s *AuthService) NeedsBootstrap(ctx context.Context) (bool, error) {
	n, err := s.storage.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("service.auth.NeedsBootstrap: %w", err)
	}
	return n == 0, nil
}

// Bootstrap creates the first manager. It only works while no user exists.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) (*storage.UserInfo, error) {
	const op = "service.auth.Bootstrap"

	s.bootstrapMu.Lock()
	defer s.bootstrapMu.Unlock()

	empty, err := s.NeedsBootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !empty {
		return nil, ErrBootstrapClosed
	}

	return s.CreateUser(ctx, username, password, storage.RoleManager)
}

// VerifyManager checks re-entered manager credentials.
func (s *AuthService) VerifyManager(ctx context.Context, username, password string) (*storage.User, error) {
	u, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if u.Role != storage.RoleManager {
		return nil, ErrAuthFailure
	}
	return u, nil
}

// CreateUserAsManager creates a user after checking the manager credentials.
func (s *AuthService) CreateUserAsManager(ctx context.Context, managerName, managerPassword, username, password, role string) (*storage.UserInfo, error) {
	if _, err := s.VerifyManager(ctx, managerName, managerPassword); err != nil {
		return nil, err
	}
	return s.CreateUser(ctx, username, password, role)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]storage.UserInfo, error) {
	const op = "service.auth.ListUsers"

	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	infos := make([]storage.UserInfo, len(users))
	for i, u := range users {
		infos[i] = u.Info()
	}
	return infos, nil
}
