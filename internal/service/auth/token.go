package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bons-travail/internal/storage"
)

var ErrInvalidToken = errors.New("jeton invalide")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the authenticated caller of a request.
type Session struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *AuthService) IssueToken(u *storage.User) (string, *Session, error) {
	now := time.Now()
	session := &Session{
		Username:  u.Username,
		Role:      u.Role,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(s.ttl).Truncate(time.Second),
	}

	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("service.auth.IssueToken: %w", err)
	}

	return token, session, nil
}

func (s *AuthService) ParseToken(tokenStr string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || !storage.IsRole(claims.Role) {
		return nil, ErrInvalidToken
	}

	session := &Session{
		Username: claims.Subject,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *Session, error) {
	u, err := s.Verify(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	return s.IssueToken(u)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
