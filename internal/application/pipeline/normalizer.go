package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
)

// typeSampleSize limits how many non-empty cells per column are inspected.
const typeSampleSize = 200

// typeThreshold is the share of sampled cells that must agree on a type.
const typeThreshold = 0.8

// InferColumnTypes classifies each column as numeric, date or text by sampling
// its non-empty cells. Columns without any value are text.
func InferColumnTypes(columns []string, rows [][]string) map[string]entity.ColumnType {
	inferred := make(map[string]entity.ColumnType, len(columns))
	for i, col := range columns {
		samples := make([]string, 0, typeSampleSize)
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			samples = append(samples, v)
			if len(samples) == typeSampleSize {
				break
			}
		}
		inferred[col] = detectType(samples)
	}
	return inferred
}

func detectType(samples []string) entity.ColumnType {
	if len(samples) == 0 {
		return entity.ColumnText
	}

	numCount, dateCount := 0, 0
	for _, v := range samples {
		if _, ok := parseDateText(v); ok {
			dateCount++
		} else if isNumber(v) {
			numCount++
		}
	}

	threshold := int(float64(len(samples))*typeThreshold + 0.5)
	if threshold == 0 {
		threshold = 1
	}
	if dateCount >= threshold {
		return entity.ColumnDate
	}
	if numCount >= threshold {
		return entity.ColumnNumeric
	}
	return entity.ColumnText
}

// Normalize propõe o mapeamento padrão de cada campo canônico:
// nome igual (sem diferenciar maiúsculas), senão a primeira coluna numérica
// para campos numéricos, senão a primeira coluna. O resultado é apenas sugestivo.
func Normalize(columns []string, columnTypes map[string]entity.ColumnType) entity.ColumnMapping {
	mapping := make(entity.ColumnMapping, len(entity.CanonicalFields))
	if len(columns) == 0 {
		return mapping
	}

	firstNumeric := ""
	for _, col := range columns {
		if columnTypes[col] == entity.ColumnNumeric {
			firstNumeric = col
			break
		}
	}

	for _, field := range entity.CanonicalFields {
		if col, ok := matchColumnName(columns, field); ok {
			mapping[field] = col
			continue
		}
		if field.IsNumeric() && firstNumeric != "" {
			mapping[field] = firstNumeric
			continue
		}
		mapping[field] = columns[0]
	}
	return mapping
}

func matchColumnName(columns []string, field entity.Field) (string, bool) {
	for _, name := range []string{field.DisplayName(), field.String()} {
		for _, col := range columns {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return col, true
			}
		}
	}
	return "", false
}

// ValidateMapping checks that every canonical field maps to an existing column and
// reports all offending fields at once.
func ValidateMapping(table entity.RawTable, mapping entity.ColumnMapping) error {
	var missing []entity.Field
	columns := make(map[entity.Field]string)
	for _, field := range entity.CanonicalFields {
		col := mapping[field]
		if col == "" || !table.HasColumn(col) {
			missing = append(missing, field)
			columns[field] = col
		}
	}
	if len(missing) > 0 {
		return &types.MissingColumnError{Fields: missing, Columns: columns}
	}
	return nil
}

// Apply converte as linhas brutas em registros canônicos segundo o mapeamento.
// Falha com *types.MissingColumnError antes de converter qualquer linha.
// O número de registros é sempre igual ao número de linhas brutas.
func Apply(table entity.RawTable, mapping entity.ColumnMapping) ([]entity.CanonicalRecord, error) {
	if err := ValidateMapping(table, mapping); err != nil {
		return nil, err
	}

	idx := make(map[entity.Field]int, len(entity.CanonicalFields))
	for _, field := range entity.CanonicalFields {
		idx[field] = table.ColumnIndex(mapping[field])
	}

	cell := func(row []string, field entity.Field) string {
		i := idx[field]
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	records := make([]entity.CanonicalRecord, 0, len(table.Rows))
	for n, row := range table.Rows {
		rec := entity.CanonicalRecord{
			Row:          n + 1,
			Consultant:   cell(row, entity.FieldConsultant),
			Client:       cell(row, entity.FieldClient),
			BusinessHead: cell(row, entity.FieldBusinessHead),
			Date:         ParseDate(cell(row, entity.FieldDate)),
		}
		rec.Period = Derive(rec.Date)

		for _, field := range []entity.Field{entity.FieldBilledAmount, entity.FieldNetAmount, entity.FieldActualDays, entity.FieldTargetDays} {
			amount, ok := ParseAmount(cell(row, field))
			if !ok {
				rec.Invalid = append(rec.Invalid, field)
			}
			switch field {
			case entity.FieldBilledAmount:
				rec.BilledAmount = amount
			case entity.FieldNetAmount:
				rec.NetAmount = amount
			case entity.FieldActualDays:
				rec.ActualDays = amount
			case entity.FieldTargetDays:
				rec.TargetDays = amount
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseOverrides applies "Field=Column" overrides on top of base and returns a new mapping.
// Field accepts either the compact or the display name.
func ParseOverrides(base entity.ColumnMapping, overrides []string) (entity.ColumnMapping, error) {
	mapping := base.Clone()
	for _, raw := range overrides {
		name, column, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(column) == "" {
			return nil, fmt.Errorf("%w: %q (expected Field=Column)", types.ErrInvalidOverride, raw)
		}
		field, ok := entity.ParseField(name)
		if !ok || field.IsPeriod() {
			return nil, fmt.Errorf("%w: unknown field %q", types.ErrInvalidOverride, strings.TrimSpace(name))
		}
		mapping[field] = strings.TrimSpace(column)
	}
	return mapping, nil
}

// MappingFromConfig converte o mapa de configuração (campo → coluna) em overrides.
func MappingFromConfig(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	overrides := make([]string, 0, len(keys))
	for _, k := range keys {
		overrides = append(overrides, k+"="+m[k])
	}
	return overrides
}

// DuplicateColumns returns the raw columns bound to more than one canonical field.
func DuplicateColumns(mapping entity.ColumnMapping) map[string][]entity.Field {
	used := make(map[string][]entity.Field)
	for _, field := range entity.CanonicalFields {
		if col, ok := mapping[field]; ok && col != "" {
			used[col] = append(used[col], field)
		}
	}
	for col, fields := range used {
		if len(fields) < 2 {
			delete(used, col)
		}
	}
	return used
}
