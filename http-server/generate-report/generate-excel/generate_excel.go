package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bons-travail/internal/lib/response"
	excel "bons-travail/internal/service/generate-excel"
	"bons-travail/internal/service/pareto"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, filter excel.Filter) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		fromStr := r.URL.Query().Get("from")
		toStr := r.URL.Query().Get("to")

		// пустые границы - без ограничения
		var filter excel.Filter

		if fromStr != "" {
			fDate, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				http.Error(w, "invalid from date", http.StatusBadRequest)
				return
			}
			filter.From = fDate
		}

		if toStr != "" {
			tDate, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				http.Error(w, "invalid to date", http.StatusBadRequest)
				return
			}
			filter.To = tDate
		}

		if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
			http.Error(w, "invalid date range", http.StatusBadRequest)
			return
		}

		period, err := pareto.ParsePeriod(r.URL.Query().Get("period"))
		if err != nil {
			response.Error(w, log, op, err)
			return
		}
		filter.Period = period

		if topStr := r.URL.Query().Get("top"); topStr != "" {
			top, err := strconv.Atoi(topStr)
			if err != nil || top < 1 || top > 10 {
				http.Error(w, "invalid top", http.StatusBadRequest)
				return
			}
			filter.TopN = top
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second) // На Excel можно побольше времени
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, filter)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		fileName := fmt.Sprintf("Bons_Travail_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
