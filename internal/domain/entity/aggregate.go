package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnmappedLabel is the bucket for records whose grouping value is null.
const UnmappedLabel = "(unmapped)"

// AggregateRow is one group of a generic aggregation: the group key values
// followed by one sum per requested field.
type AggregateRow struct {
	Keys []string          `json:"keys"`
	Sums []decimal.Decimal `json:"sums"`
}

// ConsultantTotal drives the consultant chart.
type ConsultantTotal struct {
	Consultant   string          `json:"consultant"`
	BilledAmount decimal.Decimal `json:"billed_amount"`
}

// ClientTotal drives the client chart.
type ClientTotal struct {
	Client    string          `json:"client"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

// BusinessHeadTotal drives the team summary.
type BusinessHeadTotal struct {
	BusinessHead string          `json:"business_head"`
	BilledAmount decimal.Decimal `json:"billed_amount"`
	NetAmount    decimal.Decimal `json:"net_amount"`
}

// TrendBasis selects whether the monthly trend is bucketed by fiscal or calendar year.
type TrendBasis string

const (
	TrendFiscal   TrendBasis = "fiscal"
	TrendCalendar TrendBasis = "calendar"
)

// MonthlyTotal is one point of the monthly trend.
// Year is the fiscal or calendar year depending on Basis.
type MonthlyTotal struct {
	Basis        TrendBasis      `json:"basis"`
	Year         int             `json:"year"`
	Month        string          `json:"month"`
	MonthOrder   int             `json:"month_order"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	BilledAmount decimal.Decimal `json:"billed_amount"`
}

// Label returns "Jan FY2023" for the fiscal basis and "Jan 2023" otherwise.
func (m MonthlyTotal) Label() string {
	if m.Basis == TrendFiscal {
		return fmt.Sprintf("%s FY%d", m.Month, m.Year)
	}
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Totals are the global scalar metrics of a filtered set. All zero when empty.
type Totals struct {
	Records      int             `json:"records"`
	BilledAmount decimal.Decimal `json:"billed_amount"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	ActualDays   decimal.Decimal `json:"actual_days"`
	TargetDays   decimal.Decimal `json:"target_days"`
}

// DashboardResult is everything the presentation layer needs for one run.
type DashboardResult struct {
	Totals         Totals              `json:"totals"`
	ByConsultant   []ConsultantTotal   `json:"by_consultant"`
	ByClient       []ClientTotal       `json:"by_client"`
	ByBusinessHead []BusinessHeadTotal `json:"by_business_head"`
	Monthly        []MonthlyTotal      `json:"monthly"`
	TrendBasis     TrendBasis          `json:"trend_basis"`
	Filtered       []CanonicalRecord   `json:"-"`
	Options        FilterOptions       `json:"-"`
	Mapping        ColumnMapping       `json:"-"`
	SourceRows     int                 `json:"source_rows"`
	UndatedRows    int                 `json:"undated_rows"`
	Empty          bool                `json:"empty"`
}
