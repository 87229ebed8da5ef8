package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bons-travail/internal/storage"
)

func (s *Storage) CreateWorkOrder(ctx context.Context, wo storage.WorkOrder) error {
	const op = "storage.gormdb.CreateWorkOrder"

	if wo.Code == "" {
		return fmt.Errorf("%s: %w", op, storage.NewValidationError(storage.FieldCode, "обязательное поле"))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&workOrderModel{}).Where("code = ?", wo.Code).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return storage.ErrDuplicateKey
		}

		m := newWorkOrderModel(wo)
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) || isDuplicate(err) {
			return fmt.Errorf("%s: code=%s: %w", op, wo.Code, storage.ErrDuplicateKey)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) UpdateWorkOrder(ctx context.Context, code string, fields storage.Fields) (*storage.WorkOrder, error) {
	const op = "storage.gormdb.UpdateWorkOrder"

	var updated storage.WorkOrder

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m workOrderModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("code = ?", code).First(&m).Error
		if err != nil {
			return err
		}

		updated = m.toWorkOrder()
		updated.Apply(fields)

		values := make(map[string]any, len(storage.WorkOrderFields))
		for name, v := range updated.ToFields() {
			if name != storage.FieldCode {
				values[name] = v
			}
		}

		return tx.Model(&workOrderModel{}).Where("id = ?", m.ID).Updates(values).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &updated, nil
}

func (s *Storage) DeleteWorkOrder(ctx context.Context, code string) error {
	const op = "storage.gormdb.DeleteWorkOrder"

	if err := s.db.WithContext(ctx).Where("code = ?", code).Delete(&workOrderModel{}).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetWorkOrder(ctx context.Context, code string) (*storage.WorkOrder, error) {
	const op = "storage.gormdb.GetWorkOrder"

	var m workOrderModel
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wo := m.toWorkOrder()
	return &wo, nil
}

func (s *Storage) ListWorkOrders(ctx context.Context) ([]storage.WorkOrder, error) {
	const op = "storage.gormdb.ListWorkOrders"

	var models []workOrderModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders := make([]storage.WorkOrder, 0, len(models))
	for _, m := range models {
		orders = append(orders, m.toWorkOrder())
	}

	return orders, nil
}
