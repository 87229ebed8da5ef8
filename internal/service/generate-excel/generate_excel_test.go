package generate_excel

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"

	"bons-travail/internal/service/pareto"
	"bons-travail/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockGenerateExcelStorage struct {
	mock.Mock
}

func (m *MockGenerateExcelStorage) ListWorkOrders(ctx context.Context) ([]storage.WorkOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.WorkOrder), args.Error(1)
}

func (m *MockGenerateExcelStorage) ListSpareParts(ctx context.Context) ([]storage.SparePart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.SparePart), args.Error(1)
}

func sampleOrders() []storage.WorkOrder {
	return []storage.WorkOrder{
		{Code: "BT-1", Date: "2024-01-01", Workstation: "ASL011"},
		{Code: "BT-2", Date: "2024-01-01", Workstation: "ASL021"},
		{Code: "BT-3", Date: "2024-01-02", Technician: "Ali"},
		{Code: "BT-4", Date: "2024-02-10"},
	}
}

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// Тест: книга содержит боны, детали и лист Pareto
func TestGenerateExcel(t *testing.T) {
	m := &MockGenerateExcelStorage{}
	m.On("ListWorkOrders", mock.Anything).Return(sampleOrders(), nil)
	m.On("ListSpareParts", mock.Anything).Return([]storage.SparePart{{Code: "PDR-1", ComponentName: "Vérin", Quantity: 2}}, nil)

	b, err := NewGenerateService(m).GenerateExcel(context.Background(), Filter{Period: pareto.PeriodDay, TopN: 3})
	require.NoError(t, err)

	f := open(t, b)
	assert.Equal(t, []string{sheetWorkOrders, sheetSpareParts, sheetPareto}, f.GetSheetList())

	rows, err := f.GetRows(sheetWorkOrders)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Code", rows[0][0])
	assert.Equal(t, "Poste de charge", rows[0][3])
	assert.Equal(t, "BT-1", rows[1][0])

	v, err := f.GetCellValue(sheetSpareParts, "D2")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	label, err := f.GetCellValue(sheetPareto, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", label)
	count, err := f.GetCellValue(sheetPareto, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", count)

	m.AssertExpectations(t)
}

func TestGenerateExcel_DateFilter(t *testing.T) {
	m := &MockGenerateExcelStorage{}
	m.On("ListWorkOrders", mock.Anything).Return(sampleOrders(), nil)
	m.On("ListSpareParts", mock.Anything).Return([]storage.SparePart{}, nil)

	filter := Filter{
		From:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Period: pareto.PeriodMonth,
	}
	b, err := NewGenerateService(m).GenerateExcel(context.Background(), filter)
	require.NoError(t, err)

	rows, err := open(t, b).GetRows(sheetWorkOrders)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BT-3", rows[1][0])
}

func TestGenerateExcel_Empty(t *testing.T) {
	m := &MockGenerateExcelStorage{}
	m.On("ListWorkOrders", mock.Anything).Return([]storage.WorkOrder{}, nil)
	m.On("ListSpareParts", mock.Anything).Return([]storage.SparePart{}, nil)

	b, err := NewGenerateService(m).GenerateExcel(context.Background(), Filter{})
	require.NoError(t, err)

	v, err := open(t, b).GetCellValue(sheetPareto, "A2")
	require.NoError(t, err)
	assert.Equal(t, pareto.NoValidDatesMessage, v)
}

func TestGenerateExcel_StorageError(t *testing.T) {
	m := &MockGenerateExcelStorage{}
	m.On("ListWorkOrders", mock.Anything).Return(nil, errors.New("db down"))
	m.On("ListSpareParts", mock.Anything).Return([]storage.SparePart{}, nil)

	_, err := NewGenerateService(m).GenerateExcel(context.Background(), Filter{})
	assert.Error(t, err)
}

// Тест: топ N, итог и vital few пишутся под таблицей Pareto
func TestGenerateExcel_ParetoTopBlock(t *testing.T) {
	generate := func(topN int) *excelize.File {
		m := &MockGenerateExcelStorage{}
		m.On("ListWorkOrders", mock.Anything).Return(sampleOrders(), nil)
		m.On("ListSpareParts", mock.Anything).Return([]storage.SparePart{}, nil)

		b, err := NewGenerateService(m).GenerateExcel(context.Background(), Filter{Period: pareto.PeriodDay, TopN: topN})
		require.NoError(t, err)
		return open(t, b)
	}

	cell := func(f *excelize.File, axis string) string {
		v, err := f.GetCellValue(sheetPareto, axis)
		require.NoError(t, err)
		return v
	}

	// 3 периода: строки 2..4, блок топа с 6-й строки
	one := generate(1)
	assert.Equal(t, "80", cell(one, "E2"))
	assert.Equal(t, "Top 1", cell(one, "A6"))
	assert.Equal(t, "2024-01-01", cell(one, "A7"))
	assert.Empty(t, cell(one, "A8"))
	assert.Equal(t, "Résumé", cell(one, "A9"))
	assert.Contains(t, cell(one, "B9"), "Périodes les plus impactées")
	assert.Equal(t, "2024-01-01, 2024-01-02, 2024-02-10", cell(one, "B10"))

	ten := generate(10)
	assert.Equal(t, "Top 3", cell(ten, "A6"))
	assert.Equal(t, "2024-02-10", cell(ten, "A9"))
	assert.Equal(t, "Résumé", cell(ten, "A11"))
	assert.NotEqual(t, cell(one, "B9"), cell(ten, "B11"))
}
