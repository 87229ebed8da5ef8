package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bons-travail/internal/storage"
)

func (s *Storage) UpsertSparePart(ctx context.Context, part storage.SparePart) error {
	const op = "storage.mysql.UpsertSparePart"

	if err := part.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	stmt := `
		INSERT INTO spare_parts (code, replacement, component_name, quantity)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			replacement = VALUES(replacement),
			component_name = VALUES(component_name),
			quantity = VALUES(quantity)
	`

	if _, err := s.db.ExecContext(ctx, stmt, part.Code, part.Replacement, part.ComponentName, part.Quantity); err != nil {
		return fmt.Errorf("%s: ошибка сохранения детали code=%s: %w", op, part.Code, err)
	}

	return nil
}

func (s *Storage) GetSparePart(ctx context.Context, code string) (*storage.SparePart, error) {
	const op = "storage.mysql.GetSparePart"

	p := &storage.SparePart{}
	err := s.db.QueryRowContext(ctx,
		`SELECT code, replacement, component_name, quantity FROM spare_parts WHERE code = ?`, code,
	).Scan(&p.Code, &p.Replacement, &p.ComponentName, &p.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *Storage) ListSpareParts(ctx context.Context) ([]storage.SparePart, error) {
	const op = "storage.mysql.ListSpareParts"

	rows, err := s.db.QueryContext(ctx, `SELECT code, replacement, component_name, quantity FROM spare_parts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения деталей: %w", op, err)
	}
	defer rows.Close()

	parts := []storage.SparePart{}
	for rows.Next() {
		var p storage.SparePart
		if err := rows.Scan(&p.Code, &p.Replacement, &p.ComponentName, &p.Quantity); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		parts = append(parts, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return parts, nil
}

func (s *Storage) DeleteSparePart(ctx context.Context, code string) error {
	const op = "storage.mysql.DeleteSparePart"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM spare_parts WHERE code = ?`, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DecrementSparePart never goes below zero; zero affected rows means an unknown code.
func (s *Storage) DecrementSparePart(ctx context.Context, code string) error {
	const op = "storage.mysql.DecrementSparePart"

	stmt := `UPDATE spare_parts SET quantity = GREATEST(CAST(quantity AS SIGNED) - 1, 0) WHERE code = ?`

	if _, err := s.db.ExecContext(ctx, stmt, code); err != nil {
		return fmt.Errorf("%s: code=%s: %w", op, code, err)
	}

	return nil
}
