package login

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/lib/validator"
	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/policy"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, *auth.Session, error)
}

type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	Token          string    `json:"token"`
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	ExpiresAt      time.Time `json:"expires_at"`
	Pages          []string  `json:"pages"`
	EditableFields []string  `json:"editable_fields"`
}

func Login(log *slog.Logger, a Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.Login"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "JSON invalide", http.StatusBadRequest)
			return
		}
		if fields := validator.Validate(req); fields != nil {
			response.Invalid(w, r, fields)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		token, session, err := a.Login(ctx, req.Username, req.Password)
		if err != nil {
			log.Warn("login refused", slog.String("op", op), slog.String("username", req.Username))
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, Response{
			Token:          token,
			Username:       session.Username,
			Role:           session.Role,
			ExpiresAt:      session.ExpiresAt,
			Pages:          policy.AccessiblePages(session.Role),
			EditableFields: policy.EditableFields(session.Role),
		})
	}
}
