package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/application/pipeline"
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/diillson/billing-dashboard-go/pkg/console"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

const currencySymbol = "₹"

// RenderDashboard prints metrics, charts and summary tables of one result.
// rows limits the detail table; a negative value shows every row.
func (uc *DashboardUseCase) RenderDashboard(result entity.DashboardResult, rows int) {
	if result.Empty {
		uc.console.LogWarning("No rows match the selected filters. All metrics are 0.")
	}
	uc.console.LogInfo("Showing %d of %d rows", result.Totals.Records, result.SourceRows)

	uc.console.DisplayMetrics(metricsFor(result.Totals))

	consultants := make([]types.ChartPoint, 0, len(result.ByConsultant))
	for _, c := range result.ByConsultant {
		consultants = append(consultants, types.ChartPoint{Label: c.Consultant, Value: c.BilledAmount.InexactFloat64()})
	}
	uc.console.DisplayBarChart("Billing by Consultant", consultants)

	clients := make([]types.ChartPoint, 0, len(result.ByClient))
	for _, c := range result.ByClient {
		clients = append(clients, types.ChartPoint{Label: c.Client, Value: c.NetAmount.InexactFloat64()})
	}
	uc.console.DisplayBarChart("Net Billing by Client", clients)

	trend := make([]types.ChartPoint, 0, len(result.Monthly))
	for _, m := range result.Monthly {
		trend = append(trend, types.ChartPoint{Label: m.Label(), Value: m.NetAmount.InexactFloat64()})
	}
	uc.console.DisplayTrendBars(fmt.Sprintf("Monthly Net Billing Trend (%s year)", result.TrendBasis), trend)

	heads := make([]types.ChartPoint, 0, len(result.ByBusinessHead))
	for _, h := range result.ByBusinessHead {
		heads = append(heads, types.ChartPoint{Label: h.BusinessHead, Value: h.NetAmount.InexactFloat64()})
	}
	uc.console.DisplayBarChart("Team-Level Billing by Business Head", heads)

	uc.renderTable(pipeline.MonthTable(result.Monthly, result.TrendBasis), -1)
	uc.renderTable(pipeline.TeamTable(result.ByBusinessHead), -1)
	uc.renderTable(pipeline.DetailTable(result.Filtered), rows)
}

func metricsFor(totals entity.Totals) []types.Metric {
	return []types.Metric{
		{Label: "Total Billed", Value: formatAmount(totals.BilledAmount)},
		{Label: "Total Net Amount", Value: formatAmount(totals.NetAmount)},
		{Label: "Actual Days", Value: formatDecimal(totals.ActualDays, 1)},
		{Label: "Target Days", Value: formatDecimal(totals.TargetDays, 1)},
	}
}

func (uc *DashboardUseCase) renderTable(table entity.Table, limit int) {
	uc.console.Println(pterm.DefaultSection.Sprint(entity.ExportKind(table.Name).Title()))

	if len(table.Rows) == 0 {
		uc.console.LogInfo("No rows match the selected filters.")
		return
	}

	t := uc.console.CreateTable()
	for _, col := range table.Columns {
		t.AddColumn(col)
	}

	shown := table.Rows
	if limit >= 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, row := range shown {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = displayCell(cell)
		}
		t.AddRow(cells...)
	}
	uc.console.Println(t.Render())

	if len(shown) < len(table.Rows) {
		uc.console.LogInfo("Showing first %d of %d rows. Use --rows to change the limit.", len(shown), len(table.Rows))
	}
}

// DisplayMapping mostra, para cada campo canônico, a coluna proposta e a escolhida.
func (uc *DashboardUseCase) DisplayMapping(table entity.RawTable, guess, mapping entity.ColumnMapping) {
	t := uc.console.CreateTable()
	t.AddColumn("Field")
	t.AddColumn("Column")
	t.AddColumn("Type")
	t.AddColumn("Source")

	for _, field := range entity.CanonicalFields {
		col := mapping[field]
		colType := string(table.Types[col])
		source := "guess"
		switch {
		case col == "":
			col, colType, source = "-", "-", "unmapped"
		case !table.HasColumn(col):
			colType, source = "-", "not found"
		case col != guess[field]:
			source = "override"
		case strings.EqualFold(col, field.DisplayName()) || strings.EqualFold(col, field.String()):
			source = "name match"
		}
		t.AddRow(field.DisplayName(), col, colType, source)
	}

	uc.console.Println(pterm.DefaultSection.Sprint("Column Mapping"))
	uc.console.Println(t.Render())
}

func displayCell(v interface{}) string {
	switch c := v.(type) {
	case decimal.Decimal:
		return formatDecimal(c, 2)
	case int:
		return strconv.Itoa(c)
	case string:
		if c == "" {
			return "-"
		}
		return c
	default:
		return fmt.Sprint(c)
	}
}

// formatAmount formata valores monetários sem casas decimais: "₹1,234,567".
func formatAmount(d decimal.Decimal) string {
	s := formatDecimal(d, 0)
	if strings.HasPrefix(s, "-") {
		return "-" + currencySymbol + s[1:]
	}
	return currencySymbol + s
}

// formatDecimal arredonda para places casas e agrupa a parte inteira em milhares.
func formatDecimal(d decimal.Decimal, places int32) string {
	return console.FormatNumber(d.Round(places).InexactFloat64(), int(places))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
