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
)

type OptionAppender interface {
	Append(ctx context.Context, kind, value string) ([]string, error)
}

type Request struct {
	Value string `json:"value" validate:"required"`
}

// AppendOption adds an "Autres..." value and returns the updated list.
func AppendOption(log *slog.Logger, appender OptionAppender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.options.save.AppendOption"

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

		values, err := appender.Append(ctx, chi.URLParam(r, "kind"), req.Value)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, values)
	}
}
