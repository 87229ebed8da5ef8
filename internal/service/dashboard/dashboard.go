package dashboard

import (
	"context"
	"fmt"
	"slices"

	"bons-travail/internal/service/pareto"
	"bons-travail/internal/storage"
)

const NoWorkOrdersMessage = "Aucun bon enregistré."

type WorkOrderLister interface {
	ListWorkOrders(ctx context.Context) ([]storage.WorkOrder, error)
}

type Dashboard struct {
	Pareto  pareto.Report       `json:"pareto"`
	Preview []storage.WorkOrder `json:"preview"`
	Message string              `json:"message,omitempty"`
}

type DashboardService struct {
	storage WorkOrderLister
}

func NewDashboardService(storage WorkOrderLister) *DashboardService {
	return &DashboardService{storage: storage}
}

// ByPeriod builds the Pareto of stoppages per period and the preview table.
func (s *DashboardService) ByPeriod(ctx context.Context, period string, topN int) (*Dashboard, error) {
	const op = "service.dashboard.ByPeriod"

	p, err := pareto.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	orders, err := s.storage.ListWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := &Dashboard{
		Pareto:  pareto.ByPeriod(orders, p, topN),
		Preview: Preview(orders),
	}
	if len(orders) == 0 {
		d.Message = NoWorkOrdersMessage
	}
	return d, nil
}

// ByCause ranks work orders by a categorical field.
func (s *DashboardService) ByCause(ctx context.Context, field string, topN int) (*Dashboard, error) {
	const op = "service.dashboard.ByCause"

	if !pareto.IsCauseField(field) {
		return nil, storage.NewValidationError("field", "анализ по полю "+field+" не поддерживается")
	}

	orders, err := s.storage.ListWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report, err := pareto.ByField(orders, field, topN)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Pareto: report, Preview: Preview(orders)}
	if len(orders) == 0 {
		d.Message = NoWorkOrdersMessage
	}
	return d, nil
}

// Preview returns a copy of orders, most recent date first. Records with an
// unparsable date go last, in their original order.
func Preview(orders []storage.WorkOrder) []storage.WorkOrder {
	out := slices.Clone(orders)
	if out == nil {
		out = []storage.WorkOrder{}
	}

	slices.SortStableFunc(out, func(a, b storage.WorkOrder) int {
		ta, okA := pareto.ParseDate(a.Date)
		tb, okB := pareto.ParseDate(b.Date)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})

	return out
}
