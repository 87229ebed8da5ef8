package generate_excel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"bons-travail/internal/service/pareto"
	"bons-travail/internal/storage"
)

const (
	sheetWorkOrders = "Bons de travail"
	sheetSpareParts = "PDR"
	sheetPareto     = "Pareto"
)

type GenerateExcelStorage interface {
	ListWorkOrders(ctx context.Context) ([]storage.WorkOrder, error)
	ListSpareParts(ctx context.Context) ([]storage.SparePart, error)
}

// Filter bounds the exported work orders by date; zero bounds are open.
type Filter struct {
	From   time.Time
	To     time.Time
	Period pareto.Period
	TopN   int
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// Заголовки колонок листа с бонами
var workOrderHeaders = map[string]string{
	storage.FieldCode:                  "Code",
	storage.FieldDate:                  "Date",
	storage.FieldDeclaredBy:            "Arrêt déclaré par",
	storage.FieldWorkstation:           "Poste de charge",
	storage.FieldDeclarationTime:       "Heure déclaration",
	storage.FieldMachineStopped:        "Machine arrêtée",
	storage.FieldInterventionStartTime: "Début intervention",
	storage.FieldInterventionEndTime:   "Fin intervention",
	storage.FieldTechnician:            "Technicien",
	storage.FieldProblemDescription:    "Description problème",
	storage.FieldActionTaken:           "Action",
	storage.FieldSparePartUsed:         "PDR utilisée",
	storage.FieldObservation:           "Observation",
	storage.FieldResult:                "Résultat",
	storage.FieldAcceptanceCondition:   "Condition d'acceptation",
	storage.FieldMaintenanceDept:       "Dpt maintenance",
	storage.FieldQualityDept:           "Dpt qualité",
	storage.FieldProductionDept:        "Dpt production",
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, filter Filter) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	// 1. Получаем боны и детали параллельно
	var (
		orders []storage.WorkOrder
		parts  []storage.SparePart
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		orders, err = g.storage.ListWorkOrders(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		parts, err = g.storage.ListSpareParts(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	orders = filterByDate(orders, filter.From, filter.To)
	if filter.Period == "" {
		filter.Period = pareto.PeriodDay
	}
	report := pareto.ByPeriod(orders, filter.Period, filter.TopN)

	f := excelize.NewFile()
	defer f.Close()

	// --- СТИЛИ ---
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: style: %w", op, err)
	}

	if err := f.SetSheetName("Sheet1", sheetWorkOrders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := writeWorkOrders(f, orders, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, sheetWorkOrders, err)
	}

	if _, err := f.NewSheet(sheetSpareParts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := writeSpareParts(f, parts, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, sheetSpareParts, err)
	}

	if _, err := f.NewSheet(sheetPareto); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := writePareto(f, report, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, sheetPareto, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func filterByDate(orders []storage.WorkOrder, from, to time.Time) []storage.WorkOrder {
	if from.IsZero() && to.IsZero() {
		return orders
	}

	out := make([]storage.WorkOrder, 0, len(orders))
	for _, wo := range orders {
		t, ok := pareto.ParseDate(wo.Date)
		if !ok {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if !from.IsZero() && day.Before(from) {
			continue
		}
		if !to.IsZero() && day.After(to) {
			continue
		}
		out = append(out, wo)
	}
	return out
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), style); err != nil {
		return err
	}

	// Закрепляем первую строку
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeWorkOrders(f *excelize.File, orders []storage.WorkOrder, style int) error {
	headers := make([]string, len(storage.WorkOrderFields))
	for i, name := range storage.WorkOrderFields {
		headers[i] = workOrderHeaders[name]
	}
	if err := writeHeader(f, sheetWorkOrders, headers, style); err != nil {
		return err
	}

	for rowIdx, wo := range orders {
		for colIdx, name := range storage.WorkOrderFields {
			if err := f.SetCellValue(sheetWorkOrders, cellName(colIdx+1, rowIdx+2), wo.Get(name)); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheetWorkOrders, "A", lastCol, 18)
}

func writeSpareParts(f *excelize.File, parts []storage.SparePart, style int) error {
	if err := writeHeader(f, sheetSpareParts, []string{"Code", "Composant", "Remplacement", "Quantité"}, style); err != nil {
		return err
	}

	for i, p := range parts {
		row := []any{p.Code, p.ComponentName, p.Replacement, p.Quantity}
		if err := f.SetSheetRow(sheetSpareParts, cellName(1, i+2), &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetSpareParts, "A", "D", 20)
}

func writePareto(f *excelize.File, report pareto.Report, style int) error {
	headers := []string{"Période", "Nombre d'interventions", "Cumul", "Pourcentage cumulé (%)", "Seuil (%)"}
	if err := writeHeader(f, sheetPareto, headers, style); err != nil {
		return err
	}

	if report.Empty() {
		return f.SetCellValue(sheetPareto, "A2", report.Message)
	}

	for i, b := range report.Buckets {
		row := []any{b.Label, b.Count, b.Cumulative, b.CumulativePercent, report.Threshold}
		if err := f.SetSheetRow(sheetPareto, cellName(1, i+2), &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetPareto, "A", "E", 22); err != nil {
		return err
	}

	last := len(report.Buckets) + 1
	if err := writeParetoSummary(f, report, last+2, style); err != nil {
		return err
	}

	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheetPareto, col, col, last)
	}

	// столбцы - количество, линии - накопленный процент и порог 80 % на второй оси (0..110)
	bars := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheetPareto),
			Categories: ref("A"),
			Values:     ref("B"),
		}},
		Title:     []excelize.RichTextRun{{Text: fmt.Sprintf("Pareto (%s)", report.Period)}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 720, Height: 320},
	}
	minPct, maxPct := 0.0, 110.0
	line := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$D$1", sheetPareto),
				Categories: ref("A"),
				Values:     ref("D"),
				Marker:     excelize.ChartMarker{Symbol: "circle"},
			},
			{
				Name:       fmt.Sprintf("'%s'!$E$1", sheetPareto),
				Categories: ref("A"),
				Values:     ref("E"),
				Marker:     excelize.ChartMarker{Symbol: "none"},
			},
		},
		YAxis: excelize.ChartAxis{Secondary: true, Minimum: &minPct, Maximum: &maxPct},
	}

	return f.AddChart(sheetPareto, "G2", bars, line)
}

// writeParetoSummary пишет под таблицей топ N, итоговую фразу и "vital few".
func writeParetoSummary(f *excelize.File, report pareto.Report, row, style int) error {
	title := fmt.Sprintf("Top %d", len(report.Top))
	if err := writeRow(f, row, []any{title, "Nombre d'interventions", "Pourcentage cumulé (%)"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetPareto, cellName(1, row), cellName(3, row), style); err != nil {
		return err
	}

	for i, b := range report.Top {
		if err := writeRow(f, row+1+i, []any{b.Label, b.Count, b.CumulativePercent}); err != nil {
			return err
		}
	}

	row += len(report.Top) + 2
	if err := writeRow(f, row, []any{"Résumé", report.Summary}); err != nil {
		return err
	}
	vital := fmt.Sprintf("Vital few (%.0f %%)", report.Threshold)
	return writeRow(f, row+1, []any{vital, strings.Join(report.VitalFew, ", ")})
}

func writeRow(f *excelize.File, row int, values []any) error {
	return f.SetSheetRow(sheetPareto, cellName(1, row), &values)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
