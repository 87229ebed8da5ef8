package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/storage"
)

type UserLister interface {
	ListUsers(ctx context.Context) ([]storage.UserInfo, error)
}

func GetUsers(log *slog.Logger, users UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.get.GetUsers"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := users.ListUsers(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, list)
	}
}
