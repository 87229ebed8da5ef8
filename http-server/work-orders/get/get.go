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

type WorkOrderProvider interface {
	Get(ctx context.Context, code string) (*storage.WorkOrder, error)
	List(ctx context.Context) ([]storage.WorkOrder, error)
}

// GetWorkOrders returns every work order in insertion order.
func GetWorkOrders(log *slog.Logger, p WorkOrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.work-orders.get.GetWorkOrders"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orders, err := p.List(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, orders)
	}
}

func GetWorkOrder(log *slog.Logger, p WorkOrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.work-orders.get.GetWorkOrder"

		code := chi.URLParam(r, "code")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		wo, err := p.Get(ctx, code)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, wo)
	}
}
