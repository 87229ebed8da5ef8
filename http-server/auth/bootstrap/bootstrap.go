package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/lib/validator"
	"bons-travail/internal/storage"
)

type Bootstrapper interface {
	NeedsBootstrap(ctx context.Context) (bool, error)
	Bootstrap(ctx context.Context, username, password string) (*storage.UserInfo, error)
}

type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Status tells the front whether the first manager still has to be created.
func Status(log *slog.Logger, b Bootstrapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.bootstrap.Status"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		needed, err := b.NeedsBootstrap(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, map[string]bool{"needs_bootstrap": needed})
	}
}

// Bootstrap creates the first manager account, only while no user exists.
func Bootstrap(log *slog.Logger, b Bootstrapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.bootstrap.Bootstrap"

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

		info, err := b.Bootstrap(ctx, req.Username, req.Password)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("first manager created", slog.String("op", op), slog.String("username", info.Username))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, info)
	}
}
