package mysql

import (
	"context"
	"fmt"

	"bons-travail/internal/storage"
)

func (s *Storage) ListOptions(ctx context.Context, kind string) ([]string, error) {
	const op = "storage.mysql.ListOptions"

	if !storage.IsOptionKind(kind) {
		return nil, fmt.Errorf("%s: %w", op, storage.NewValidationError("kind", "неизвестный список: "+kind))
	}

	rows, err := s.db.QueryContext(ctx, "SELECT `value` FROM options WHERE kind = ? ORDER BY id", kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		values = append(values, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return values, nil
}

func (s *Storage) AppendOption(ctx context.Context, kind, value string) error {
	const op = "storage.mysql.AppendOption"

	if !storage.IsOptionKind(kind) {
		return fmt.Errorf("%s: %w", op, storage.NewValidationError("kind", "неизвестный список: "+kind))
	}

	_, err := s.db.ExecContext(ctx, "INSERT INTO options (kind, `value`) VALUES (?, ?)", kind, value)
	if err != nil {
		// значение уже есть в списке
		if isDuplicate(err) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SeedOptions(ctx context.Context, kind string, values []string) error {
	const op = "storage.mysql.SeedOptions"

	if !storage.IsOptionKind(kind) {
		return fmt.Errorf("%s: %w", op, storage.NewValidationError("kind", "неизвестный список: "+kind))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: не удалось начать транзакцию: %w", op, err)
	}

	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM options WHERE kind = ? FOR UPDATE`, kind).Scan(&n); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT IGNORE INTO options (kind, `value`) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("%s: не удалось подготовить запрос: %w", op, err)
	}
	defer stmt.Close()

	for _, v := range values {
		if _, err := stmt.ExecContext(ctx, kind, v); err != nil {
			return fmt.Errorf("%s: value=%s: %w", op, v, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: ошибка коммита транзакции: %w", op, err)
	}

	return nil
}
