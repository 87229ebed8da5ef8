package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bons-travail/internal/storage"
)

var (
	workOrderColumns = quoteColumns(storage.WorkOrderFields)
	selectWorkOrder  = "SELECT " + strings.Join(workOrderColumns, ", ") + " FROM work_orders"
)

func quoteColumns(names []string) []string {
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = "`" + n + "`"
	}
	return cols
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row rowScanner) (*storage.WorkOrder, error) {
	values := make([]string, len(storage.WorkOrderFields))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	fields := make(storage.Fields, len(values))
	for i, name := range storage.WorkOrderFields {
		fields[name] = values[i]
	}

	wo := storage.WorkOrderFromFields(fields)
	return &wo, nil
}

func workOrderArgs(wo storage.WorkOrder) []any {
	fields := wo.ToFields()
	args := make([]any, len(storage.WorkOrderFields))
	for i, name := range storage.WorkOrderFields {
		args[i] = fields[name]
	}
	return args
}

func (s *Storage) CreateWorkOrder(ctx context.Context, wo storage.WorkOrder) error {
	const op = "storage.mysql.CreateWorkOrder"

	if wo.Code == "" {
		return fmt.Errorf("%s: %w", op, storage.NewValidationError(storage.FieldCode, "обязательное поле"))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(workOrderColumns)), ", ")
	stmt := "INSERT INTO work_orders (" + strings.Join(workOrderColumns, ", ") + ") VALUES (" + placeholders + ")"

	if _, err := s.db.ExecContext(ctx, stmt, workOrderArgs(wo)...); err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%s: code=%s: %w", op, wo.Code, storage.ErrDuplicateKey)
		}
		return fmt.Errorf("%s: ошибка вставки бона: %w", op, err)
	}

	return nil
}

func (s *Storage) UpdateWorkOrder(ctx context.Context, code string, fields storage.Fields) (*storage.WorkOrder, error) {
	const op = "storage.mysql.UpdateWorkOrder"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: не удалось начать транзакцию: %w", op, err)
	}

	defer tx.Rollback()

	// блокируем строку до конца транзакции
	wo, err := scanWorkOrder(tx.QueryRowContext(ctx, selectWorkOrder+" WHERE code = ? FOR UPDATE", code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: ошибка чтения бона: %w", op, err)
	}

	wo.Apply(fields)

	sets := make([]string, 0, len(workOrderColumns)-1)
	args := make([]any, 0, len(workOrderColumns))
	current := wo.ToFields()
	for i, name := range storage.WorkOrderFields {
		if name == storage.FieldCode {
			continue
		}
		sets = append(sets, workOrderColumns[i]+" = ?")
		args = append(args, current[name])
	}
	args = append(args, code)

	if _, err := tx.ExecContext(ctx, "UPDATE work_orders SET "+strings.Join(sets, ", ")+" WHERE code = ?", args...); err != nil {
		return nil, fmt.Errorf("%s: ошибка обновления бона: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: ошибка коммита транзакции: %w", op, err)
	}

	return wo, nil
}

func (s *Storage) DeleteWorkOrder(ctx context.Context, code string) error {
	const op = "storage.mysql.DeleteWorkOrder"

	if _, err := s.db.ExecContext(ctx, "DELETE FROM work_orders WHERE code = ?", code); err != nil {
		return fmt.Errorf("%s: ошибка удаления бона: %w", op, err)
	}

	return nil
}

func (s *Storage) GetWorkOrder(ctx context.Context, code string) (*storage.WorkOrder, error) {
	const op = "storage.mysql.GetWorkOrder"

	wo, err := scanWorkOrder(s.db.QueryRowContext(ctx, selectWorkOrder+" WHERE code = ?", code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return wo, nil
}

func (s *Storage) ListWorkOrders(ctx context.Context) ([]storage.WorkOrder, error) {
	const op = "storage.mysql.ListWorkOrders"

	rows, err := s.db.QueryContext(ctx, selectWorkOrder+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения бонов: %w", op, err)
	}
	defer rows.Close()

	orders := []storage.WorkOrder{}
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		orders = append(orders, *wo)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return orders, nil
}
