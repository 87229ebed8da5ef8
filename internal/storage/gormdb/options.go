package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bons-travail/internal/storage"
)

func checkKind(kind string) error {
	if !storage.IsOptionKind(kind) {
		return storage.NewValidationError("kind", "неизвестный список: "+kind)
	}
	return nil
}

func (s *Storage) ListOptions(ctx context.Context, kind string) ([]string, error) {
	const op = "storage.gormdb.ListOptions"

	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	values := []string{}
	err := s.db.WithContext(ctx).Model(&optionModel{}).
		Where("kind = ?", kind).
		Order("id").
		Pluck("value", &values).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return values, nil
}

func (s *Storage) AppendOption(ctx context.Context, kind, value string) error {
	const op = "storage.gormdb.AppendOption"

	if err := checkKind(kind); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m := optionModel{Kind: kind, Value: value}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SeedOptions(ctx context.Context, kind string, values []string) error {
	const op = "storage.gormdb.SeedOptions"

	if err := checkKind(kind); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&optionModel{}).Where("kind = ?", kind).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 || len(values) == 0 {
			return nil
		}

		models := make([]optionModel, 0, len(values))
		for _, v := range values {
			models = append(models, optionModel{Kind: kind, Value: v})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
