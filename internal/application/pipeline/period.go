package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// fiscalMonths é a sequência fixa do ano fiscal abril–março.
var fiscalMonths = []string{"Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}

// dateLayouts são tentados em ordem. Datas numéricas com '/' ou '-' assumem mês
// primeiro; dia primeiro só vale quando o primeiro campo passa de 12.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/1/2",
	"1/2/2006",
	"2/1/2006",
	"1/2/06",
	"1-2-2006",
	"2-1-2006",
	"01-02-06",
	"2 Jan 2006",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
}

// FiscalMonths returns the fiscal month sequence Apr..Mar.
func FiscalMonths() []string {
	out := make([]string, len(fiscalMonths))
	copy(out, fiscalMonths)
	return out
}

// MonthOrder returns the 1-based position of a month abbreviation in the fiscal
// sequence (Apr=1 .. Mar=12), or 0 for an unknown label.
func MonthOrder(month string) int {
	for i, m := range fiscalMonths {
		if strings.EqualFold(m, strings.TrimSpace(month)) {
			return i + 1
		}
	}
	return 0
}

// calendarMonth returns 1..12 for a month abbreviation, or 0.
func calendarMonth(month string) int {
	order := MonthOrder(month)
	if order == 0 {
		return 0
	}
	return (order+2)%12 + 1
}

// FiscalYear returns the April–March fiscal year a date belongs to,
// labelled by its starting calendar year.
func FiscalYear(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// Derive computes the period attributes for a date. A nil date yields
// attributes with Valid=false.
func Derive(date *time.Time) entity.PeriodAttributes {
	if date == nil {
		return entity.PeriodAttributes{}
	}
	month := date.Format("Jan")
	return entity.PeriodAttributes{
		Valid:       true,
		Month:       month,
		Year:        date.Year(),
		FiscalYear:  FiscalYear(*date),
		FiscalMonth: month,
		MonthOrder:  MonthOrder(month),
	}
}

// ParseDate parses a cell value into a date. It never fails: values that match
// no known layout and are not an Excel serial number return nil.
func ParseDate(value string) *time.Time {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	if t, ok := parseDateText(s); ok {
		return &t
	}

	// Células de data lidas sem formatação chegam como número serial do Excel.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}
	return nil
}

func parseDateText(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
