package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/lib/validator"
	"bons-travail/internal/service/auth"
	"bons-travail/internal/storage"
)

type UserCreator interface {
	CreateUser(ctx context.Context, username, password, role string) (*storage.UserInfo, error)
}

type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=production maintenance qualite manager"`
}

// CreateUser adds an account. The route is guarded by the manager Basic
// credentials middleware, which leaves the manager session in the context.
func CreateUser(log *slog.Logger, creator UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.save.CreateUser"

		manager, ok := auth.SessionFrom(r.Context())
		if !ok || manager.Role != storage.RoleManager {
			http.Error(w, auth.ErrAuthFailure.Error(), http.StatusUnauthorized)
			return
		}

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

		info, err := creator.CreateUser(ctx, req.Username, req.Password, req.Role)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("user created",
			slog.String("op", op),
			slog.String("by", manager.Username),
			slog.String("username", info.Username),
			slog.String("role", info.Role),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, info)
	}
}
