package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/policy"
	"bons-travail/internal/storage"
)

type TokenParser interface {
	ParseToken(token string) (*auth.Session, error)
}

type ManagerVerifier interface {
	VerifyManager(ctx context.Context, username, password string) (*storage.User, error)
}

// Session requires a valid "Authorization: Bearer <jwt>" header and stores
// the caller in the request context.
func Session(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				requireToken(w)
				return
			}

			session, err := parser.ParseToken(token)
			if err != nil {
				requireToken(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

// RequirePage lets the request through when the session role may open one
// of the pages. Must run after Session.
func RequirePage(pages ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := auth.SessionFrom(r.Context())
			if !ok {
				requireToken(w)
				return
			}

			if err := policy.AuthorizeAny(session.Role, pages...); err != nil {
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ManagerBasicAuth checks manager credentials re-entered with HTTP Basic
// on every request. Only rejected credentials answer 401; storage failures
// are logged and answered with 500.
func ManagerBasicAuth(log *slog.Logger, verifier ManagerVerifier) func(http.Handler) http.Handler {
	const op = "middleware.auth.ManagerBasicAuth"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := basicCredentials(r)
			if !ok {
				requireAuth(w, "Unauthorized")
				return
			}

			u, err := verifier.VerifyManager(r.Context(), username, password)
			if errors.Is(err, auth.ErrAuthFailure) {
				requireAuth(w, auth.ErrAuthFailure.Error())
				return
			}
			if err != nil {
				response.Error(w, log, op, err)
				return
			}

			ctx := auth.WithSession(r.Context(), &auth.Session{Username: u.Username, Role: u.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(authHeader[7:])
	return token, token != ""
}

func basicCredentials(r *http.Request) (string, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", "", false
	}

	creds, err := base64.StdEncoding.DecodeString(authHeader[6:])
	if err != nil {
		return "", "", false
	}

	credPair := strings.SplitN(string(creds), ":", 2)
	if len(credPair) != 2 {
		return "", "", false
	}

	return credPair[0], credPair[1], true
}

func requireToken(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="bons-travail"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

func requireAuth(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Utilisateurs"`)
	http.Error(w, msg, http.StatusUnauthorized)
}
