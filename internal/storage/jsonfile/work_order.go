package jsonfile

import (
	"context"
	"fmt"

	"bons-travail/internal/storage"
)

func (s *Storage) readWorkOrders(ctx context.Context) ([]storage.WorkOrder, error) {
	orders := []storage.WorkOrder{}
	if err := s.load(ctx, fileWorkOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Storage) CreateWorkOrder(ctx context.Context, wo storage.WorkOrder) error {
	const op = "storage.jsonfile.CreateWorkOrder"

	if wo.Code == "" {
		return fmt.Errorf("%s: %w", op, storage.NewValidationError(storage.FieldCode, "обязательное поле"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readWorkOrders(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, o := range orders {
		if o.Code == wo.Code {
			return fmt.Errorf("%s: code=%s: %w", op, wo.Code, storage.ErrDuplicateKey)
		}
	}

	orders = append(orders, wo)
	if err := s.save(fileWorkOrders, orders); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) UpdateWorkOrder(ctx context.Context, code string, fields storage.Fields) (*storage.WorkOrder, error) {
	const op = "storage.jsonfile.UpdateWorkOrder"

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range orders {
		if orders[i].Code != code {
			continue
		}

		orders[i].Apply(fields)
		if err := s.save(fileWorkOrders, orders); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		updated := orders[i]
		return &updated, nil
	}

	return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
}

func (s *Storage) DeleteWorkOrder(ctx context.Context, code string) error {
	const op = "storage.jsonfile.DeleteWorkOrder"

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readWorkOrders(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kept := orders[:0]
	for _, o := range orders {
		if o.Code != code {
			kept = append(kept, o)
		}
	}

	// нечего удалять - файл не трогаем
	if len(kept) == len(orders) {
		return nil
	}

	if err := s.save(fileWorkOrders, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetWorkOrder(ctx context.Context, code string) (*storage.WorkOrder, error) {
	const op = "storage.jsonfile.GetWorkOrder"

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, o := range orders {
		if o.Code == code {
			return &o, nil
		}
	}

	return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
}

func (s *Storage) ListWorkOrders(ctx context.Context) ([]storage.WorkOrder, error) {
	const op = "storage.jsonfile.ListWorkOrders"

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}
