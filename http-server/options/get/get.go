package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
)

type OptionsProvider interface {
	List(ctx context.Context, kind string) ([]string, error)
}

func GetOptions(log *slog.Logger, p OptionsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.options.get.GetOptions"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		values, err := p.List(ctx, chi.URLParam(r, "kind"))
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, values)
	}
}
