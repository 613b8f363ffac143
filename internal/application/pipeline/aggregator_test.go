package pipeline

import (
	"testing"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioTotals(t *testing.T) {
	totals := Totals(scenarioRecords(t))
	assert.Equal(t, 2, totals.Records)
	assert.Equal(t, "300", totals.BilledAmount.String())
	assert.Equal(t, "270", totals.NetAmount.String())
	assert.Equal(t, "8", totals.ActualDays.String())
	assert.Equal(t, "9", totals.TargetDays.String())
}

func TestTotalsOfEmptySetAreZero(t *testing.T) {
	for _, records := range [][]entity.CanonicalRecord{nil, {}} {
		totals := Totals(records)
		assert.Equal(t, 0, totals.Records)
		for _, d := range []decimal.Decimal{totals.BilledAmount, totals.NetAmount, totals.ActualDays, totals.TargetDays} {
			assert.True(t, d.IsZero())
			assert.Equal(t, "0", d.String())
		}
	}
}

func TestByClient(t *testing.T) {
	got := ByClient(scenarioRecords(t))
	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0].Client)
	assert.Equal(t, "270", got[0].NetAmount.String())
}

func TestByClientKeepsNullClients(t *testing.T) {
	records := scenarioRecords(t)
	records = append(records, entity.CanonicalRecord{Row: 3, Consultant: "C", NetAmount: decimal.NewFromInt(500)})

	got := ByClient(records)
	require.Len(t, got, 2)
	assert.Equal(t, entity.UnmappedLabel, got[0].Client)
	assert.Equal(t, "500", got[0].NetAmount.String())
	assert.Equal(t, "X", got[1].Client)
}

func TestByConsultantSortedByBilledDesc(t *testing.T) {
	got := ByConsultant(scenarioRecords(t))
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Consultant)
	assert.Equal(t, "200", got[0].BilledAmount.String())
	assert.Equal(t, "A", got[1].Consultant)
}

func TestByBusinessHead(t *testing.T) {
	got := ByBusinessHead(scenarioRecords(t))
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].BusinessHead)
	assert.Equal(t, "300", got[0].BilledAmount.String())
	assert.Equal(t, "270", got[0].NetAmount.String())
}

func TestMonthlyTrendFiscalOrder(t *testing.T) {
	got := MonthlyTrend(scenarioRecords(t), entity.TrendFiscal)
	require.Len(t, got, 2)

	assert.Equal(t, 2023, got[0].Year)
	assert.Equal(t, "Jan", got[0].Month)
	assert.Equal(t, 10, got[0].MonthOrder)
	assert.Equal(t, "180", got[0].NetAmount.String())
	assert.Equal(t, "Jan FY2023", got[0].Label())

	assert.Equal(t, 2024, got[1].Year)
	assert.Equal(t, "May", got[1].Month)
	assert.Equal(t, 2, got[1].MonthOrder)
	assert.Equal(t, "90", got[1].NetAmount.String())
	assert.Equal(t, "100", got[1].BilledAmount.String())
}

func TestMonthlyTrendPlacesDecemberBeforeJanuary(t *testing.T) {
	table := scenarioTable()
	table.Rows = [][]string{
		{"A", "X", "T1", "2024-02-01", "1", "1", "1", "1"},
		{"A", "X", "T1", "2024-01-01", "1", "1", "1", "1"},
		{"A", "X", "T1", "2023-12-01", "1", "1", "1", "1"},
		{"A", "X", "T1", "2023-04-01", "1", "1", "1", "1"},
		{"A", "X", "T1", "2024-03-31", "1", "1", "1", "1"},
		{"A", "X", "T1", "2024-01-20", "2", "2", "1", "1"},
	}
	records, err := Apply(table, identityMapping())
	require.NoError(t, err)

	got := MonthlyTrend(records, "")
	labels := make([]string, 0, len(got))
	for _, m := range got {
		labels = append(labels, m.Label())
	}
	assert.Equal(t, []string{"Apr FY2023", "Dec FY2023", "Jan FY2023", "Feb FY2023", "Mar FY2023"}, labels)
	assert.Equal(t, "3", got[2].NetAmount.String())

	calendar := MonthlyTrend(records, entity.TrendCalendar)
	labels = labels[:0]
	for _, m := range calendar {
		labels = append(labels, m.Label())
	}
	assert.Equal(t, []string{"Apr 2023", "Dec 2023", "Jan 2024", "Feb 2024", "Mar 2024"}, labels)
}

func TestMonthlyTrendSkipsUndatedRows(t *testing.T) {
	records := scenarioRecords(t)
	records = append(records, entity.CanonicalRecord{Row: 3, Consultant: "C", NetAmount: decimal.NewFromInt(999)})

	got := MonthlyTrend(records, entity.TrendFiscal)
	assert.Len(t, got, 2)

	totals := Totals(records)
	assert.Equal(t, "1269", totals.NetAmount.String())
}

func TestAggregateGeneric(t *testing.T) {
	rows := Aggregate(scenarioRecords(t),
		[]entity.Field{entity.FieldBusinessHead, entity.FieldConsultant},
		[]entity.Field{entity.FieldActualDays, entity.FieldTargetDays})

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"T1", "A"}, rows[0].Keys)
	assert.Equal(t, "5", rows[0].Sums[0].String())
	assert.Equal(t, "5", rows[0].Sums[1].String())
	assert.Equal(t, []string{"T1", "B"}, rows[1].Keys)
	assert.Equal(t, "4", rows[1].Sums[1].String())

	assert.Empty(t, Aggregate(nil, []entity.Field{entity.FieldClient}, []entity.Field{entity.FieldNetAmount}))
}

func TestBuild(t *testing.T) {
	records := scenarioRecords(t)

	result := Build(records, entity.FilterSelection{}, "")
	assert.False(t, result.Empty)
	assert.Equal(t, entity.TrendFiscal, result.TrendBasis)
	assert.Equal(t, 2, result.SourceRows)
	assert.Zero(t, result.UndatedRows)
	assert.Equal(t, "300", result.Totals.BilledAmount.String())

	empty := Build(records, entity.FilterSelection{Clients: []string{"nobody"}}, entity.TrendCalendar)
	assert.True(t, empty.Empty)
	assert.Equal(t, "0", empty.Totals.NetAmount.String())
	assert.Empty(t, empty.ByClient)
	assert.Empty(t, empty.Monthly)
	assert.Equal(t, []string{"A", "B"}, empty.Options[entity.FieldConsultant])
}

func TestTableFor(t *testing.T) {
	result := Build(scenarioRecords(t), entity.FilterSelection{}, entity.TrendFiscal)

	detail, ok := TableFor(entity.ExportFiltered, result)
	require.True(t, ok)
	assert.Equal(t, DetailColumns, detail.Columns)
	require.Len(t, detail.Rows, 2)
	assert.Equal(t, "2024-05-10", detail.Rows[0][3])
	assert.Equal(t, 2024, detail.Rows[0][10])

	month, ok := TableFor(entity.ExportMonth, result)
	require.True(t, ok)
	assert.Equal(t, []string{"Fiscal Year", "Month", "Net Amount", "Billed Amount"}, month.Columns)
	assert.Equal(t, 2023, month.Rows[0][0])

	team, ok := TableFor(entity.ExportTeam, result)
	require.True(t, ok)
	assert.Equal(t, "team", team.Name)
	assert.Len(t, team.Rows, 1)

	_, ok = TableFor(entity.ExportKind("bogus"), result)
	assert.False(t, ok)

	empty := DetailTable(nil)
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)
}
