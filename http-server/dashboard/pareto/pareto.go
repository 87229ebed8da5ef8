package pareto

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
	"bons-travail/internal/lib/validator"
	"bons-travail/internal/service/dashboard"
)

type DashboardProvider interface {
	ByPeriod(ctx context.Context, period string, topN int) (*dashboard.Dashboard, error)
	ByCause(ctx context.Context, field string, topN int) (*dashboard.Dashboard, error)
}

type Query struct {
	Period string `validate:"omitempty,oneof=day week month"`
	Field  string
	Top    *int `validate:"omitempty,min=1,max=10"`
}

// GetPareto serves ?period=day|week|month&top=N, or ?field=...&top=N for
// the ranking of causes.
func GetPareto(log *slog.Logger, p DashboardProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.pareto.GetPareto"

		q := Query{
			Period: r.URL.Query().Get("period"),
			Field:  r.URL.Query().Get("field"),
		}

		if topStr := r.URL.Query().Get("top"); topStr != "" {
			top, err := strconv.Atoi(topStr)
			if err != nil {
				response.Invalid(w, r, map[string]string{"Top": "numeric"})
				return
			}
			q.Top = &top
		}

		if fields := validator.Validate(q); fields != nil {
			response.Invalid(w, r, fields)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		// 0 - размер топа по умолчанию
		topN := 0
		if q.Top != nil {
			topN = *q.Top
		}

		var (
			d   *dashboard.Dashboard
			err error
		)
		if q.Field != "" {
			d, err = p.ByCause(ctx, q.Field, topN)
		} else {
			d, err = p.ByPeriod(ctx, q.Period, topN)
		}
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, d)
	}
}
