package remove

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bons-travail/internal/lib/response"
)

type WorkOrderDeleter interface {
	Delete(ctx context.Context, code string) error
}

// DeleteWorkOrder answers 204 whether or not the code existed.
func DeleteWorkOrder(log *slog.Logger, deleter WorkOrderDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.work-orders.remove.DeleteWorkOrder"

		code := chi.URLParam(r, "code")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.Delete(ctx, code); err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("work order deleted", slog.String("op", op), slog.String("code", code))

		w.WriteHeader(http.StatusNoContent)
	}
}
