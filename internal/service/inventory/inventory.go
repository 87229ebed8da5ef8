package inventory

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bons-travail/internal/storage"
)

type SparePartStorage interface {
	UpsertSparePart(ctx context.Context, part storage.SparePart) error
	GetSparePart(ctx context.Context, code string) (*storage.SparePart, error)
	ListSpareParts(ctx context.Context) ([]storage.SparePart, error)
	DeleteSparePart(ctx context.Context, code string) error
}

// Заголовки колонок при импорте (в нижнем регистре)
var headerAliases = map[string]string{
	"code":           "code",
	"code pdr":       "code",
	"replacement":    "replacement",
	"remplacement":   "replacement",
	"component_name": "component_name",
	"composant":      "component_name",
	"nom composant":  "component_name",
	"quantity":       "quantity",
	"quantité":       "quantity",
	"quantite":       "quantity",
	"qté":            "quantity",
}

type InventoryService struct {
	storage SparePartStorage
}

func NewInventoryService(storage SparePartStorage) *InventoryService {
	return &InventoryService{storage: storage}
}

func (s *InventoryService) Upsert(ctx context.Context, part storage.SparePart) error {
	part.Code = strings.TrimSpace(part.Code)
	if err := part.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpsertSparePart(ctx, part); err != nil {
		return fmt.Errorf("service.inventory.Upsert: %w", err)
	}
	return nil
}

func (s *InventoryService) Get(ctx context.Context, code string) (*storage.SparePart, error) {
	p, err := s.storage.GetSparePart(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service.inventory.Get: %w", err)
	}
	return p, nil
}

func (s *InventoryService) List(ctx context.Context) ([]storage.SparePart, error) {
	parts, err := s.storage.ListSpareParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.inventory.List: %w", err)
	}
	return parts, nil
}

func (s *InventoryService) Delete(ctx context.Context, code string) error {
	if err := s.storage.DeleteSparePart(ctx, code); err != nil {
		return fmt.Errorf("service.inventory.Delete: %w", err)
	}
	return nil
}

// Import reads spare parts from the first sheet of an xlsx workbook and upserts them.
// The first row holds the headers; rows without a code are skipped.
// Rows are written one by one: on a storage error the returned count is the
// number of parts already written, and those stay in the catalog.
func (s *InventoryService) Import(ctx context.Context, r io.Reader) (int, error) {
	const op = "service.inventory.Import"

	parts, err := ParseWorkbook(r)
	if err != nil {
		return 0, err
	}

	for i, p := range parts {
		if err := s.storage.UpsertSparePart(ctx, p); err != nil {
			return i, fmt.Errorf("%s: code=%s: %w", op, p.Code, err)
		}
	}

	return len(parts), nil
}

func ParseWorkbook(r io.Reader) ([]storage.SparePart, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, storage.NewValidationError("file", "не удалось прочитать xlsx: "+err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, storage.NewValidationError("file", "в книге нет листов")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, storage.NewValidationError("file", err.Error())
	}
	if len(rows) == 0 {
		return []storage.SparePart{}, nil
	}

	columns := make(map[string]int)
	for i, h := range rows[0] {
		if name, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			columns[name] = i
		}
	}
	if _, ok := columns["code"]; !ok {
		return nil, storage.NewValidationError("file", "нет колонки code")
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	parts := []storage.SparePart{}
	for n, row := range rows[1:] {
		code := cell(row, "code")
		if code == "" {
			continue
		}

		qty, err := parseQuantity(cell(row, "quantity"))
		if err != nil {
			return nil, storage.NewValidationError("quantity", fmt.Sprintf("строка %d: %v", n+2, err))
		}

		p := storage.SparePart{
			Code:          code,
			Replacement:   cell(row, "replacement"),
			ComponentName: cell(row, "component_name"),
			Quantity:      qty,
		}
		if err := p.Validate(); err != nil {
			return nil, storage.NewValidationError("quantity", fmt.Sprintf("строка %d: %v", n+2, err))
		}
		parts = append(parts, p)
	}

	return parts, nil
}

func parseQuantity(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	// excel отдаёт числа как "3.0"
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("не число: %q", s)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("дробное количество: %q", s)
	}
	return int(f), nil
}
