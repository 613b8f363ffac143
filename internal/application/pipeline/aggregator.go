package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const keySeparator = "\x1f"

// Aggregate agrupa os registros pelas chaves informadas e soma cada campo numérico.
// Grupos saem na ordem em que aparecem pela primeira vez. Registros sem período
// válido são ignorados quando alguma chave é um campo de período; valores
// categóricos nulos vão para o grupo UnmappedLabel.
func Aggregate(records []entity.CanonicalRecord, groupKeys []entity.Field, sumFields []entity.Field) []entity.AggregateRow {
	needsPeriod := false
	for _, k := range groupKeys {
		if k.IsPeriod() {
			needsPeriod = true
		}
	}

	index := make(map[string]int)
	rows := []entity.AggregateRow{}

	for _, rec := range records {
		if needsPeriod && !rec.Period.Valid {
			continue
		}

		keys := make([]string, len(groupKeys))
		for i, k := range groupKeys {
			v, ok := rec.Text(k)
			if !ok {
				v = entity.UnmappedLabel
			}
			keys[i] = v
		}

		id := strings.Join(keys, keySeparator)
		pos, ok := index[id]
		if !ok {
			sums := make([]decimal.Decimal, len(sumFields))
			for i := range sums {
				sums[i] = decimal.Zero
			}
			rows = append(rows, entity.AggregateRow{Keys: keys, Sums: sums})
			pos = len(rows) - 1
			index[id] = pos
		}
		for i, f := range sumFields {
			rows[pos].Sums[i] = rows[pos].Sums[i].Add(rec.Amount(f))
		}
	}
	return rows
}

// sortBySumDesc orders rows by their first sum, largest first, ties by key.
func sortBySumDesc(rows []entity.AggregateRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Sums[0].Cmp(rows[j].Sums[0]); c != 0 {
			return c > 0
		}
		return rows[i].Keys[0] < rows[j].Keys[0]
	})
}

// ByConsultant sums BilledAmount per consultant.
func ByConsultant(records []entity.CanonicalRecord) []entity.ConsultantTotal {
	rows := Aggregate(records, []entity.Field{entity.FieldConsultant}, []entity.Field{entity.FieldBilledAmount})
	sortBySumDesc(rows)

	out := make([]entity.ConsultantTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.ConsultantTotal{Consultant: r.Keys[0], BilledAmount: r.Sums[0]})
	}
	return out
}

// ByClient sums NetAmount per client. Rows without a client land in UnmappedLabel.
func ByClient(records []entity.CanonicalRecord) []entity.ClientTotal {
	rows := Aggregate(records, []entity.Field{entity.FieldClient}, []entity.Field{entity.FieldNetAmount})
	sortBySumDesc(rows)

	out := make([]entity.ClientTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.ClientTotal{Client: r.Keys[0], NetAmount: r.Sums[0]})
	}
	return out
}

// ByBusinessHead sums BilledAmount and NetAmount per business head.
func ByBusinessHead(records []entity.CanonicalRecord) []entity.BusinessHeadTotal {
	rows := Aggregate(records,
		[]entity.Field{entity.FieldBusinessHead},
		[]entity.Field{entity.FieldBilledAmount, entity.FieldNetAmount})
	sortBySumDesc(rows)

	out := make([]entity.BusinessHeadTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.BusinessHeadTotal{BusinessHead: r.Keys[0], BilledAmount: r.Sums[0], NetAmount: r.Sums[1]})
	}
	return out
}

// MonthlyTrend sums NetAmount and BilledAmount per (year, month).
// With the fiscal basis rows are ordered by fiscal year then MonthOrder (Apr..Mar);
// with the calendar basis by calendar year then month number.
func MonthlyTrend(records []entity.CanonicalRecord, basis entity.TrendBasis) []entity.MonthlyTotal {
	if basis != entity.TrendCalendar {
		basis = entity.TrendFiscal
	}

	yearField := entity.FieldFiscalYear
	if basis == entity.TrendCalendar {
		yearField = entity.FieldYear
	}

	rows := Aggregate(records,
		[]entity.Field{yearField, entity.FieldMonth},
		[]entity.Field{entity.FieldNetAmount, entity.FieldBilledAmount})

	out := make([]entity.MonthlyTotal, 0, len(rows))
	for _, r := range rows {
		year, _ := strconv.Atoi(r.Keys[0])
		out = append(out, entity.MonthlyTotal{
			Basis:        basis,
			Year:         year,
			Month:        r.Keys[1],
			MonthOrder:   MonthOrder(r.Keys[1]),
			NetAmount:    r.Sums[0],
			BilledAmount: r.Sums[1],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if basis == entity.TrendCalendar {
			return calendarMonth(out[i].Month) < calendarMonth(out[j].Month)
		}
		return out[i].MonthOrder < out[j].MonthOrder
	})
	return out
}

// Totals sums every numeric field over the records; an empty input yields zeros.
func Totals(records []entity.CanonicalRecord) entity.Totals {
	totals := entity.Totals{
		Records:      len(records),
		BilledAmount: decimal.Zero,
		NetAmount:    decimal.Zero,
		ActualDays:   decimal.Zero,
		TargetDays:   decimal.Zero,
	}
	for _, rec := range records {
		totals.BilledAmount = totals.BilledAmount.Add(rec.BilledAmount)
		totals.NetAmount = totals.NetAmount.Add(rec.NetAmount)
		totals.ActualDays = totals.ActualDays.Add(rec.ActualDays)
		totals.TargetDays = totals.TargetDays.Add(rec.TargetDays)
	}
	return totals
}

// Build runs filter and every aggregation over canonical records.
func Build(records []entity.CanonicalRecord, sel entity.FilterSelection, basis entity.TrendBasis) entity.DashboardResult {
	if basis != entity.TrendCalendar {
		basis = entity.TrendFiscal
	}

	filtered := Filter(records, sel)

	undated := 0
	for _, rec := range records {
		if !rec.Period.Valid {
			undated++
		}
	}

	return entity.DashboardResult{
		Totals:         Totals(filtered),
		ByConsultant:   ByConsultant(filtered),
		ByClient:       ByClient(filtered),
		ByBusinessHead: ByBusinessHead(filtered),
		Monthly:        MonthlyTrend(filtered, basis),
		TrendBasis:     basis,
		Filtered:       filtered,
		Options:        Options(records),
		SourceRows:     len(records),
		UndatedRows:    undated,
		Empty:          len(filtered) == 0,
	}
}
