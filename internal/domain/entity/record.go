package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodAttributes holds the calendar and fiscal labels derived from a record's date.
// Valid is false when the date could not be parsed; every other field is then zero.
type PeriodAttributes struct {
	Valid       bool   `json:"valid"`
	Month       string `json:"month,omitempty"`
	Year        int    `json:"year,omitempty"`
	FiscalYear  int    `json:"fiscal_year,omitempty"`
	FiscalMonth string `json:"fiscal_month,omitempty"`
	MonthOrder  int    `json:"month_order,omitempty"`
}

// CanonicalRecord is one billing line-item after column mapping.
// Empty categorical values mean "null". Invalid lists numeric fields whose
// cell could not be parsed and were counted as zero.
type CanonicalRecord struct {
	Row          int              `json:"row"`
	Consultant   string           `json:"consultant"`
	Client       string           `json:"client"`
	BusinessHead string           `json:"business_head"`
	Date         *time.Time       `json:"date,omitempty"`
	BilledAmount decimal.Decimal  `json:"billed_amount"`
	NetAmount    decimal.Decimal  `json:"net_amount"`
	ActualDays   decimal.Decimal  `json:"actual_days"`
	TargetDays   decimal.Decimal  `json:"target_days"`
	Period       PeriodAttributes `json:"period"`
	Invalid      []Field          `json:"-"`
}

// Text returns the value of a categorical or period field as a label.
// ok is false when the value is null.
func (r CanonicalRecord) Text(f Field) (value string, ok bool) {
	switch f {
	case FieldConsultant:
		return r.Consultant, r.Consultant != ""
	case FieldClient:
		return r.Client, r.Client != ""
	case FieldBusinessHead:
		return r.BusinessHead, r.BusinessHead != ""
	case FieldDate:
		if r.Date == nil {
			return "", false
		}
		return r.Date.Format("2006-01-02"), true
	}

	if !r.Period.Valid {
		return "", false
	}
	switch f {
	case FieldMonth:
		return r.Period.Month, true
	case FieldYear:
		return strconv.Itoa(r.Period.Year), true
	case FieldFiscalYear:
		return strconv.Itoa(r.Period.FiscalYear), true
	case FieldFiscalMonth:
		return r.Period.FiscalMonth, true
	}
	return "", false
}

// Amount returns the value of a numeric field; non-numeric fields yield zero.
func (r CanonicalRecord) Amount(f Field) decimal.Decimal {
	switch f {
	case FieldBilledAmount:
		return r.BilledAmount
	case FieldNetAmount:
		return r.NetAmount
	case FieldActualDays:
		return r.ActualDays
	case FieldTargetDays:
		return r.TargetDays
	}
	return decimal.Zero
}
