package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/workorder"
	"bons-travail/internal/storage"
)

type WorkOrderCreator interface {
	Create(ctx context.Context, role string, fields storage.Fields) (*workorder.Result, error)
}

// SaveWorkOrder creates a work order from a flat JSON object of string fields.
// Fields the caller's role may not write come back in ignored_fields.
func SaveWorkOrder(log *slog.Logger, creator WorkOrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.work-orders.save.SaveWorkOrder"

		session, ok := auth.SessionFrom(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var fields storage.Fields
		if err := render.DecodeJSON(r.Body, &fields); err != nil {
			http.Error(w, "JSON invalide", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		res, err := creator.Create(ctx, session.Role, fields)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("work order created",
			slog.String("op", op),
			slog.String("code", res.WorkOrder.Code),
			slog.String("by", session.Username),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, res)
	}
}
