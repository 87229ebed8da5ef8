package remove

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bons-travail/internal/lib/response"
)

type SparePartDeleter interface {
	Delete(ctx context.Context, code string) error
}

func DeleteSparePart(log *slog.Logger, deleter SparePartDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.spare-parts.remove.DeleteSparePart"

		code := chi.URLParam(r, "code")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.Delete(ctx, code); err != nil {
			response.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
