package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/storage"
)

type SparePartProvider interface {
	Get(ctx context.Context, code string) (*storage.SparePart, error)
	List(ctx context.Context) ([]storage.SparePart, error)
}

func GetSpareParts(log *slog.Logger, p SparePartProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.spare-parts.get.GetSpareParts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		parts, err := p.List(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, parts)
	}
}

func GetSparePart(log *slog.Logger, p SparePartProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.spare-parts.get.GetSparePart"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		part, err := p.Get(ctx, chi.URLParam(r, "code"))
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, part)
	}
}
