package generate_excel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	excel "bons-travail/internal/service/generate-excel"
	"bons-travail/internal/service/pareto"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateExcel(ctx context.Context, filter excel.Filter) ([]byte, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func get(gen GenerateExcelHandler, query string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	GenerateReportExcel(discard, gen).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/excel"+query, nil))
	return rr
}

// Тест: фильтр собирается из параметров запроса
func TestGenerateReportExcel_Success(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, excel.Filter{
		From:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Period: pareto.PeriodWeek,
		TopN:   5,
	}).Return([]byte("xlsx"), nil)

	rr := get(gen, "?from=2024-01-01&to=2024-01-31&period=week&top=5")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Bons_Travail_")
	assert.Equal(t, "xlsx", rr.Body.String())
	gen.AssertExpectations(t)
}

// Тест: без параметров - весь период, группировка по дням
func TestGenerateReportExcel_NoFilter(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, excel.Filter{Period: pareto.PeriodDay}).Return([]byte("xlsx"), nil)

	rr := get(gen, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	gen.AssertExpectations(t)
}

func TestGenerateReportExcel_BadParams(t *testing.T) {
	gen := new(MockGenerator)

	for _, query := range []string{
		"?from=01/01/2024",
		"?to=bad",
		"?from=2024-02-01&to=2024-01-01",
		"?period=year",
		"?top=0",
	} {
		rr := get(gen, query)
		assert.Equal(t, http.StatusBadRequest, rr.Code, query)
	}

	gen.AssertNotCalled(t, "GenerateExcel", mock.Anything, mock.Anything)
}

func TestGenerateReportExcel_ServiceError(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	rr := get(gen, "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal error\n", rr.Body.String())
}
