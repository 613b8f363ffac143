package pipeline

import (
	"testing"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

var scenarioColumns = []string{
	"Consultant", "Client", "BusinessHead", "Date",
	"BilledAmount", "NetAmount", "ActualDays", "TargetDays",
}

func scenarioTable() entity.RawTable {
	rows := [][]string{
		{"A", "X", "T1", "2024-05-10", "100", "90", "5", "5"},
		{"B", "X", "T1", "2024-01-15", "200", "180", "3", "4"},
	}
	return entity.RawTable{
		Source:  "scenario.xlsx",
		Sheet:   "Sheet1",
		Columns: scenarioColumns,
		Types:   InferColumnTypes(scenarioColumns, rows),
		Rows:    rows,
	}
}

func identityMapping() entity.ColumnMapping {
	m := entity.ColumnMapping{}
	for i, f := range entity.CanonicalFields {
		m[f] = scenarioColumns[i]
	}
	return m
}

func scenarioRecords(t *testing.T) []entity.CanonicalRecord {
	t.Helper()
	records, err := Apply(scenarioTable(), identityMapping())
	require.NoError(t, err)
	return records
}
