package pipeline

import (
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
)

// DetailColumns are the headers of the filtered detail table.
var DetailColumns = []string{
	"Consultant", "Client", "Business Head", "Date",
	"Billed Amount", "Net Amount", "Actual Days", "Target Days",
	"Month", "Year", "Fiscal Year",
}

// DetailTable renders filtered records row by row. Null dates and periods are empty cells.
func DetailTable(records []entity.CanonicalRecord) entity.Table {
	table := entity.Table{Name: string(entity.ExportFiltered), Columns: DetailColumns, Rows: [][]interface{}{}}
	for _, rec := range records {
		date, _ := rec.Text(entity.FieldDate)
		var year, fiscalYear interface{} = "", ""
		if rec.Period.Valid {
			year, fiscalYear = rec.Period.Year, rec.Period.FiscalYear
		}
		table.Rows = append(table.Rows, []interface{}{
			rec.Consultant, rec.Client, rec.BusinessHead, date,
			rec.BilledAmount, rec.NetAmount, rec.ActualDays, rec.TargetDays,
			rec.Period.Month, year, fiscalYear,
		})
	}
	return table
}

// MonthTable is the month-wise summary.
func MonthTable(monthly []entity.MonthlyTotal, basis entity.TrendBasis) entity.Table {
	yearHeader := "Fiscal Year"
	if basis == entity.TrendCalendar {
		yearHeader = "Year"
	}
	table := entity.Table{
		Name:    string(entity.ExportMonth),
		Columns: []string{yearHeader, "Month", "Net Amount", "Billed Amount"},
		Rows:    [][]interface{}{},
	}
	for _, m := range monthly {
		table.Rows = append(table.Rows, []interface{}{m.Year, m.Month, m.NetAmount, m.BilledAmount})
	}
	return table
}

// TeamTable is the business-head (team-wise) summary.
func TeamTable(heads []entity.BusinessHeadTotal) entity.Table {
	table := entity.Table{
		Name:    string(entity.ExportTeam),
		Columns: []string{"Business Head", "Billed Amount", "Net Amount"},
		Rows:    [][]interface{}{},
	}
	for _, h := range heads {
		table.Rows = append(table.Rows, []interface{}{h.BusinessHead, h.BilledAmount, h.NetAmount})
	}
	return table
}

// ConsultantTable is the billed amount per consultant.
func ConsultantTable(consultants []entity.ConsultantTotal) entity.Table {
	table := entity.Table{
		Name:    string(entity.ExportConsultant),
		Columns: []string{"Consultant", "Billed Amount"},
		Rows:    [][]interface{}{},
	}
	for _, c := range consultants {
		table.Rows = append(table.Rows, []interface{}{c.Consultant, c.BilledAmount})
	}
	return table
}

// ClientTable is the net amount per client.
func ClientTable(clients []entity.ClientTotal) entity.Table {
	table := entity.Table{
		Name:    string(entity.ExportClient),
		Columns: []string{"Client", "Net Amount"},
		Rows:    [][]interface{}{},
	}
	for _, c := range clients {
		table.Rows = append(table.Rows, []interface{}{c.Client, c.NetAmount})
	}
	return table
}

// TableFor returns the table behind an export kind.
func TableFor(kind entity.ExportKind, result entity.DashboardResult) (entity.Table, bool) {
	switch kind {
	case entity.ExportFiltered:
		return DetailTable(result.Filtered), true
	case entity.ExportMonth:
		return MonthTable(result.Monthly, result.TrendBasis), true
	case entity.ExportTeam:
		return TeamTable(result.ByBusinessHead), true
	case entity.ExportConsultant:
		return ConsultantTable(result.ByConsultant), true
	case entity.ExportClient:
		return ClientTable(result.ByClient), true
	}
	return entity.Table{}, false
}
