package entity

import "strings"

// Field identifica um campo lógico do esquema canônico de faturamento,
// independente do nome da coluna na planilha enviada.
type Field int

const (
	FieldConsultant Field = iota
	FieldClient
	FieldBusinessHead
	FieldDate
	FieldBilledAmount
	FieldNetAmount
	FieldActualDays
	FieldTargetDays

	// Campos derivados da data; nunca mapeados a partir de uma coluna.
	FieldMonth
	FieldYear
	FieldFiscalYear
	FieldFiscalMonth
)

// CanonicalFields is the fixed set of fields every upload must provide, in schema order.
var CanonicalFields = []Field{
	FieldConsultant,
	FieldClient,
	FieldBusinessHead,
	FieldDate,
	FieldBilledAmount,
	FieldNetAmount,
	FieldActualDays,
	FieldTargetDays,
}

var fieldNames = map[Field]string{
	FieldConsultant:   "Consultant",
	FieldClient:       "Client",
	FieldBusinessHead: "BusinessHead",
	FieldDate:         "Date",
	FieldBilledAmount: "BilledAmount",
	FieldNetAmount:    "NetAmount",
	FieldActualDays:   "ActualDays",
	FieldTargetDays:   "TargetDays",
	FieldMonth:        "Month",
	FieldYear:         "Year",
	FieldFiscalYear:   "FiscalYear",
	FieldFiscalMonth:  "FiscalMonth",
}

var displayNames = map[Field]string{
	FieldConsultant:   "Consultant",
	FieldClient:       "Client",
	FieldBusinessHead: "Business Head",
	FieldDate:         "Date",
	FieldBilledAmount: "Billed Amount",
	FieldNetAmount:    "Net Amount",
	FieldActualDays:   "Actual Days",
	FieldTargetDays:   "Target Days",
	FieldMonth:        "Month",
	FieldYear:         "Year",
	FieldFiscalYear:   "Fiscal Year",
	FieldFiscalMonth:  "Fiscal Month",
}

// String returns the compact identifier, e.g. "BusinessHead".
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "Unknown"
}

// DisplayName returns the human header, e.g. "Business Head".
func (f Field) DisplayName() string {
	if name, ok := displayNames[f]; ok {
		return name
	}
	return f.String()
}

// IsNumeric reports whether the field holds a summable amount.
func (f Field) IsNumeric() bool {
	switch f {
	case FieldBilledAmount, FieldNetAmount, FieldActualDays, FieldTargetDays:
		return true
	}
	return false
}

// IsCategorical reports whether the field is a free-text grouping dimension.
func (f Field) IsCategorical() bool {
	switch f {
	case FieldConsultant, FieldClient, FieldBusinessHead:
		return true
	}
	return false
}

// IsPeriod reports whether the field is derived from the date.
func (f Field) IsPeriod() bool {
	switch f {
	case FieldMonth, FieldYear, FieldFiscalYear, FieldFiscalMonth:
		return true
	}
	return false
}

// ParseField resolve um nome de campo aceitando o identificador compacto ou o
// nome de exibição, sem diferenciar maiúsculas, espaços, '_' ou '-'.
func ParseField(name string) (Field, bool) {
	key := compactName(name)
	for f, n := range fieldNames {
		if compactName(n) == key {
			return f, true
		}
	}
	return 0, false
}

func compactName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}
