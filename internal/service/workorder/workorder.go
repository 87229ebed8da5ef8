package workorder

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"bons-travail/internal/service/policy"
	"bons-travail/internal/storage"
)

type WorkOrderStorage interface {
	CreateWorkOrder(ctx context.Context, wo storage.WorkOrder) error
	UpdateWorkOrder(ctx context.Context, code string, fields storage.Fields) (*storage.WorkOrder, error)
	DeleteWorkOrder(ctx context.Context, code string) error
	GetWorkOrder(ctx context.Context, code string) (*storage.WorkOrder, error)
	ListWorkOrders(ctx context.Context) ([]storage.WorkOrder, error)
	DecrementSparePart(ctx context.Context, code string) error
}

// Result is a written work order plus the submitted fields the role could not write.
type Result struct {
	WorkOrder     *storage.WorkOrder `json:"work_order"`
	IgnoredFields []string           `json:"ignored_fields"`
}

type WorkOrderService struct {
	storage WorkOrderStorage
	log     *slog.Logger
	now     func() time.Time
}

func NewWorkOrderService(storage WorkOrderStorage, log *slog.Logger) *WorkOrderService {
	return &WorkOrderService{storage: storage, log: log, now: time.Now}
}

// Create stores a new work order with the fields role may write. An empty
// date is stamped with today; a spare part in spare_part_used leaves stock.
func (s *WorkOrderService) Create(ctx context.Context, role string, fields storage.Fields) (*Result, error) {
	const op = "service.workorder.Create"

	allowed, ignored := policy.Filter(role, fields)

	code := strings.TrimSpace(allowed[storage.FieldCode])
	if code == "" {
		return nil, storage.NewValidationError(storage.FieldCode, "обязательное поле")
	}
	allowed[storage.FieldCode] = code

	if strings.TrimSpace(allowed[storage.FieldDate]) == "" {
		allowed[storage.FieldDate] = s.now().Format("2006-01-02")
	}

	wo := storage.WorkOrderFromFields(allowed)
	if err := wo.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.CreateWorkOrder(ctx, wo); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if part := strings.TrimSpace(wo.SparePartUsed); part != "" {
		if err := s.storage.DecrementSparePart(ctx, part); err != nil {
			return nil, fmt.Errorf("%s: списание детали %s: %w", op, part, err)
		}
		s.log.Info("spare part taken from stock", slog.String("op", op), slog.String("code", wo.Code), slog.String("spare_part", part))
	}

	if len(ignored) > 0 {
		s.log.Debug("fields ignored", slog.String("op", op), slog.String("role", role), slog.Any("fields", ignored))
	}

	return &Result{WorkOrder: &wo, IgnoredFields: ignored}, nil
}

// Update merges the fields role may write. The code never changes.
func (s *WorkOrderService) Update(ctx context.Context, role, code string, fields storage.Fields) (*Result, error) {
	const op = "service.workorder.Update"

	allowed, ignored := policy.Filter(role, fields)
	if _, ok := allowed[storage.FieldCode]; ok {
		delete(allowed, storage.FieldCode)
		ignored = append(ignored, storage.FieldCode)
		sort.Strings(ignored)
	}

	if err := storage.ValidateEnums(allowed); err != nil {
		return nil, err
	}

	if len(allowed) == 0 {
		wo, err := s.storage.GetWorkOrder(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &Result{WorkOrder: wo, IgnoredFields: ignored}, nil
	}

	wo, err := s.storage.UpdateWorkOrder(ctx, code, allowed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Result{WorkOrder: wo, IgnoredFields: ignored}, nil
}

func (s *WorkOrderService) Delete(ctx context.Context, code string) error {
	if err := s.storage.DeleteWorkOrder(ctx, code); err != nil {
		return fmt.Errorf("service.workorder.Delete: %w", err)
	}
	return nil
}

func (s *WorkOrderService) Get(ctx context.Context, code string) (*storage.WorkOrder, error) {
	wo, err := s.storage.GetWorkOrder(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service.workorder.Get: %w", err)
	}
	return wo, nil
}

func (s *WorkOrderService) List(ctx context.Context) ([]storage.WorkOrder, error) {
	orders, err := s.storage.ListWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.workorder.List: %w", err)
	}
	return orders, nil
}
