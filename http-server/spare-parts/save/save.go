package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/lib/validator"
	"bons-travail/internal/storage"
)

type SparePartUpserter interface {
	Upsert(ctx context.Context, part storage.SparePart) error
}

type Request struct {
	Replacement   string `json:"replacement"`
	ComponentName string `json:"component_name"`
	Quantity      *int   `json:"quantity" validate:"required,gte=0"`
}

// UpsertSparePart creates or replaces the spare part named in the URL.
func UpsertSparePart(log *slog.Logger, upserter SparePartUpserter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.spare-parts.save.UpsertSparePart"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "JSON invalide", http.StatusBadRequest)
			return
		}
		if fields := validator.Validate(req); fields != nil {
			response.Invalid(w, r, fields)
			return
		}

		part := storage.SparePart{
			Code:          chi.URLParam(r, "code"),
			Replacement:   req.Replacement,
			ComponentName: req.ComponentName,
			Quantity:      *req.Quantity,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := upserter.Upsert(ctx, part); err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, part)
	}
}
