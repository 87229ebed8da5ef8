package pareto

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bons-travail/internal/service/dashboard"
	reporting "bons-travail/internal/service/pareto"
	"bons-travail/internal/storage"
)

type MockDashboardProvider struct {
	mock.Mock
}

func (m *MockDashboardProvider) ByPeriod(ctx context.Context, period string, topN int) (*dashboard.Dashboard, error) {
	args := m.Called(ctx, period, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Dashboard), args.Error(1)
}

func (m *MockDashboardProvider) ByCause(ctx context.Context, field string, topN int) (*dashboard.Dashboard, error) {
	args := m.Called(ctx, field, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Dashboard), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func get(p DashboardProvider, query string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	GetPareto(discard, p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard/pareto"+query, nil))
	return rr
}

// Тест: по умолчанию период и top передаются пустыми, сервис подставляет значения
func TestGetPareto_Defaults(t *testing.T) {
	p := new(MockDashboardProvider)
	p.On("ByPeriod", mock.Anything, "", 0).Return(&dashboard.Dashboard{
		Pareto: reporting.Report{
			Period:  reporting.PeriodDay,
			Buckets: []reporting.Bucket{{Label: "2024-01-01", Count: 3, Cumulative: 3, CumulativePercent: 75}},
			Total:   4,
		},
		Preview: []storage.WorkOrder{{Code: "BT-1"}},
	}, nil)

	rr := get(p, "")

	require.Equal(t, http.StatusOK, rr.Code)

	var d dashboard.Dashboard
	require.NoError(t, render.DecodeJSON(rr.Body, &d))
	assert.Equal(t, 4, d.Pareto.Total)
	assert.Equal(t, "2024-01-01", d.Pareto.Buckets[0].Label)
	p.AssertExpectations(t)
}

func TestGetPareto_WeekTop5(t *testing.T) {
	p := new(MockDashboardProvider)
	p.On("ByPeriod", mock.Anything, "week", 5).Return(&dashboard.Dashboard{}, nil)

	rr := get(p, "?period=week&top=5")

	assert.Equal(t, http.StatusOK, rr.Code)
	p.AssertExpectations(t)
}

func TestGetPareto_ByCause(t *testing.T) {
	p := new(MockDashboardProvider)
	p.On("ByCause", mock.Anything, storage.FieldWorkstation, 3).Return(&dashboard.Dashboard{}, nil)

	rr := get(p, "?field=workstation&top=3")

	assert.Equal(t, http.StatusOK, rr.Code)
	p.AssertNotCalled(t, "ByPeriod", mock.Anything, mock.Anything, mock.Anything)
}

// Тест: неверные параметры - 400 без обращения к сервису
func TestGetPareto_InvalidQuery(t *testing.T) {
	p := new(MockDashboardProvider)

	for _, query := range []string{"?period=year", "?top=0", "?top=11", "?top=abc"} {
		rr := get(p, query)
		assert.Equal(t, http.StatusBadRequest, rr.Code, query)
	}

	p.AssertNotCalled(t, "ByPeriod", mock.Anything, mock.Anything, mock.Anything)
}
