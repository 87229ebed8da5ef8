package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bons-travail/internal/storage"
)

func (s *Storage) UpsertSparePart(ctx context.Context, part storage.SparePart) error {
	const op = "storage.gormdb.UpsertSparePart"

	if err := part.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m := sparePartModel{
		Code:          part.Code,
		Replacement:   part.Replacement,
		ComponentName: part.ComponentName,
		Quantity:      part.Quantity,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"replacement", "component_name", "quantity"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("%s: code=%s: %w", op, part.Code, err)
	}

	return nil
}

func (s *Storage) GetSparePart(ctx context.Context, code string) (*storage.SparePart, error) {
	const op = "storage.gormdb.GetSparePart"

	var m sparePartModel
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p := m.toSparePart()
	return &p, nil
}

func (s *Storage) ListSpareParts(ctx context.Context) ([]storage.SparePart, error) {
	const op = "storage.gormdb.ListSpareParts"

	var models []sparePartModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	parts := make([]storage.SparePart, 0, len(models))
	for _, m := range models {
		parts = append(parts, m.toSparePart())
	}

	return parts, nil
}

func (s *Storage) DeleteSparePart(ctx context.Context, code string) error {
	const op = "storage.gormdb.DeleteSparePart"

	if err := s.db.WithContext(ctx).Where("code = ?", code).Delete(&sparePartModel{}).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DecrementSparePart(ctx context.Context, code string) error {
	const op = "storage.gormdb.DecrementSparePart"

	err := s.db.WithContext(ctx).Model(&sparePartModel{}).
		Where("code = ?", code).
		Update("quantity", gorm.Expr("CASE WHEN quantity > 0 THEN quantity - 1 ELSE 0 END")).Error
	if err != nil {
		return fmt.Errorf("%s: code=%s: %w", op, code, err)
	}

	return nil
}
