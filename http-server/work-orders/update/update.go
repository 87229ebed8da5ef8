package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/workorder"
	"bons-travail/internal/storage"
)

type WorkOrderUpdater interface {
	Update(ctx context.Context, role, code string, fields storage.Fields) (*workorder.Result, error)
}

// UpdateWorkOrder merges the submitted fields the caller's role may write
// into the work order named in the URL.
func UpdateWorkOrder(log *slog.Logger, updater WorkOrderUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.work-orders.update.UpdateWorkOrder"

		session, ok := auth.SessionFrom(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		code := chi.URLParam(r, "code")

		var fields storage.Fields
		if err := render.DecodeJSON(r.Body, &fields); err != nil {
			http.Error(w, "JSON invalide", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		res, err := updater.Update(ctx, session.Role, code, fields)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		if len(res.IgnoredFields) > 0 {
			log.Debug("fields ignored",
				slog.String("op", op),
				slog.String("role", session.Role),
				slog.Any("fields", res.IgnoredFields),
			)
		}

		render.JSON(w, r, res)
	}
}
