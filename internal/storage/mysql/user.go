package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bons-travail/internal/storage"
)

func (s *Storage) CreateUser(ctx context.Context, u storage.User) error {
	const op = "storage.mysql.CreateUser"

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Role, u.CreatedAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%s: username=%s: %w", op, u.Username, storage.ErrDuplicateUser)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*storage.User, error) {
	const op = "storage.mysql.GetUser"

	u := &storage.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash, role, created_at FROM users WHERE username = ?`, username,
	).Scan(&u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: username=%s: %w", op, username, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]storage.User, error) {
	const op = "storage.mysql.ListUsers"

	rows, err := s.db.QueryContext(ctx, `SELECT username, password_hash, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := []storage.User{}
	for rows.Next() {
		var u storage.User
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return users, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.mysql.CountUsers"

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}
