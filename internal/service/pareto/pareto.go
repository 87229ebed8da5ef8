// Package pareto ranks work orders by period or by cause and computes the
// cumulative share used for the Pareto chart.
package pareto

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"bons-travail/internal/storage"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

const (
	DefaultTopN = 3
	// Threshold is the cumulative percentage that delimits the "vital few".
	Threshold = 80.0

	NoValidDatesMessage = "Aucune date valide."
	NoValuesMessage     = "Aucune valeur renseignée."
)

// Поля, по которым строится анализ причин
var CauseFields = []string{
	storage.FieldProblemDescription,
	storage.FieldWorkstation,
	storage.FieldTechnician,
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
}

type Bucket struct {
	Label             string  `json:"label"`
	Count             int     `json:"count"`
	Cumulative        int     `json:"cumulative"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

type Report struct {
	Period    Period   `json:"period,omitempty"`
	Field     string   `json:"field,omitempty"`
	Buckets   []Bucket `json:"buckets"`
	Top       []Bucket `json:"top"`
	Total     int      `json:"total"`
	Skipped   int      `json:"skipped"`
	Threshold float64  `json:"threshold"`
	VitalFew  []string `json:"vital_few"`
	Summary   string   `json:"summary,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Empty reports whether no record could be counted.
func (r Report) Empty() bool {
	return r.Total == 0
}

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	case "":
		return PeriodDay, nil
	default:
		return "", storage.NewValidationError("period", "ожидается day, week или month")
	}
}

func IsCauseField(field string) bool {
	return slices.Contains(CauseFields, field)
}

// ParseDate accepts the date layouts found in stored work orders.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Label names the bucket of t. Weeks start on Sunday; days before the first
// Sunday of the year belong to week 00.
func Label(t time.Time, period Period) string {
	switch period {
	case PeriodWeek:
		week := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
		return fmt.Sprintf("%d-W%02d", t.Year(), week)
	case PeriodMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// ByPeriod counts work orders per period of their date. Unparsable dates are skipped.
func ByPeriod(orders []storage.WorkOrder, period Period, topN int) Report {
	dates := make([]string, len(orders))
	for i, wo := range orders {
		dates[i] = wo.Date
	}
	return ByDates(dates, period, topN)
}

func ByDates(dates []string, period Period, topN int) Report {
	labels := make([]string, 0, len(dates))
	skipped := 0
	for _, d := range dates {
		t, ok := ParseDate(d)
		if !ok {
			skipped++
			continue
		}
		labels = append(labels, Label(t, period))
	}

	r := build(labels, topN)
	r.Period = period
	r.Skipped = skipped
	if r.Empty() {
		r.Message = NoValidDatesMessage
		return r
	}
	r.Summary = summary("Périodes les plus impactées", r.Top)
	return r
}

// ByField ranks the values of a categorical field. Empty values are skipped.
func ByField(orders []storage.WorkOrder, field string, topN int) (Report, error) {
	if !IsCauseField(field) {
		return Report{}, storage.NewValidationError("field", "анализ по полю "+field+" не поддерживается")
	}

	labels := make([]string, 0, len(orders))
	skipped := 0
	for _, wo := range orders {
		v := strings.TrimSpace(wo.Get(field))
		if v == "" {
			skipped++
			continue
		}
		labels = append(labels, v)
	}

	r := build(labels, topN)
	r.Field = field
	r.Skipped = skipped
	if r.Empty() {
		r.Message = NoValuesMessage
		return r, nil
	}
	r.Summary = summary("Causes les plus fréquentes", r.Top)
	return r, nil
}

func build(labels []string, topN int) Report {
	r := Report{
		Buckets:   []Bucket{},
		Top:       []Bucket{},
		VitalFew:  []string{},
		Threshold: Threshold,
		Total:     len(labels),
	}
	if len(labels) == 0 {
		return r
	}

	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}

	for label, n := range counts {
		r.Buckets = append(r.Buckets, Bucket{Label: label, Count: n})
	}

	// по убыванию, при равенстве по метке
	slices.SortFunc(r.Buckets, func(a, b Bucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})

	cum := 0
	reached := false
	for i := range r.Buckets {
		cum += r.Buckets[i].Count
		r.Buckets[i].Cumulative = cum
		r.Buckets[i].CumulativePercent = percent(cum, r.Total)

		if !reached {
			r.VitalFew = append(r.VitalFew, r.Buckets[i].Label)
			reached = float64(cum)*100 >= Threshold*float64(r.Total)
		}
	}

	if topN <= 0 {
		topN = DefaultTopN
	}
	r.Top = r.Buckets[:min(topN, len(r.Buckets))]

	return r
}

func percent(part, total int) float64 {
	return math.Round(10000*float64(part)/float64(total)) / 100
}

func summary(title string, top []Bucket) string {
	parts := make([]string, len(top))
	for i, b := range top {
		parts[i] = fmt.Sprintf("%s (%d)", b.Label, b.Count)
	}
	return title + " : " + strings.Join(parts, ", ")
}
