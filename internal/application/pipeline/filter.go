package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
)

// strictDimensions são as dimensões afetadas pelo modo EmptySelectsNone.
var strictDimensions = []entity.Field{
	entity.FieldConsultant,
	entity.FieldClient,
	entity.FieldBusinessHead,
	entity.FieldMonth,
	entity.FieldYear,
}

// Filter returns the records matching every non-empty dimension of the selection.
// Values within a dimension are OR-combined and compared exactly after trimming;
// only month labels ignore case. Null values never match a non-empty selection.
func Filter(records []entity.CanonicalRecord, sel entity.FilterSelection) []entity.CanonicalRecord {
	if sel.EmptyMode == entity.EmptySelectsNone {
		for _, dim := range strictDimensions {
			if len(sel.Values(dim)) == 0 {
				return []entity.CanonicalRecord{}
			}
		}
	}

	sets := make(map[entity.Field]map[string]bool)
	for _, dim := range entity.FilterDimensions {
		if values := sel.Values(dim); len(values) > 0 {
			sets[dim] = memberSet(dim, values)
		}
	}

	filtered := make([]entity.CanonicalRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, sets) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func matches(rec entity.CanonicalRecord, sets map[entity.Field]map[string]bool) bool {
	for dim, set := range sets {
		value, ok := rec.Text(dim)
		if !ok || !set[MemberKey(dim, value)] {
			return false
		}
	}
	return true
}

// MemberKey is the value compared by Filter for a dimension.
func MemberKey(dim entity.Field, value string) string {
	value = strings.TrimSpace(value)
	if dim == entity.FieldMonth {
		return strings.ToLower(value)
	}
	return value
}

func memberSet(dim entity.Field, items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[MemberKey(dim, item)] = true
	}
	return set
}

// Options lists the distinct non-null values of each filter dimension.
// Categorical values are sorted alphabetically, months in fiscal order and years ascending.
func Options(records []entity.CanonicalRecord) entity.FilterOptions {
	options := make(entity.FilterOptions, len(entity.FilterDimensions))
	for _, dim := range entity.FilterDimensions {
		seen := make(map[string]bool)
		values := []string{}
		for _, rec := range records {
			if v, ok := rec.Text(dim); ok && !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}

		switch dim {
		case entity.FieldMonth:
			sort.Slice(values, func(i, j int) bool { return MonthOrder(values[i]) < MonthOrder(values[j]) })
		case entity.FieldYear, entity.FieldFiscalYear:
			sort.Slice(values, func(i, j int) bool {
				a, _ := strconv.Atoi(values[i])
				b, _ := strconv.Atoi(values[j])
				return a < b
			})
		default:
			sort.Strings(values)
		}
		options[dim] = values
	}
	return options
}

// UnknownValues lists, per dimension, the selected values that match no record
// of the dataset described by options. The selection itself is left untouched:
// a dimension whose values are all unknown still excludes every row.
func UnknownValues(sel entity.FilterSelection, options entity.FilterOptions) map[entity.Field][]string {
	unknown := make(map[entity.Field][]string)
	for _, dim := range entity.FilterDimensions {
		values := sel.Values(dim)
		if len(values) == 0 {
			continue
		}
		available := memberSet(dim, options[dim])
		for _, v := range values {
			if !available[MemberKey(dim, v)] {
				unknown[dim] = append(unknown[dim], v)
			}
		}
	}
	return unknown
}
