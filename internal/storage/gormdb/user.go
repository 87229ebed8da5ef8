package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bons-travail/internal/storage"
)

func (s *Storage) CreateUser(ctx context.Context, u storage.User) error {
	const op = "storage.gormdb.CreateUser"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&userModel{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return storage.ErrDuplicateUser
		}

		m := userModel{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			CreatedAt:    u.CreatedAt,
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) || isDuplicate(err) {
			return fmt.Errorf("%s: username=%s: %w", op, u.Username, storage.ErrDuplicateUser)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*storage.User, error) {
	const op = "storage.gormdb.GetUser"

	var m userModel
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: username=%s: %w", op, username, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u := m.toUser()
	return &u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]storage.User, error) {
	const op = "storage.gormdb.ListUsers"

	var models []userModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users := make([]storage.User, 0, len(models))
	for _, m := range models {
		users = append(users, m.toUser())
	}

	return users, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.gormdb.CountUsers"

	var n int64
	if err := s.db.WithContext(ctx).Model(&userModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}
