package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/billing-dashboard-go/internal/adapter/driven/spreadsheet"
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamTable() entity.Table {
	return entity.Table{
		Name:    string(entity.ExportTeam),
		Columns: []string{"Business Head", "Billed Amount", "Net Amount"},
		Rows: [][]interface{}{
			{"H1", decimal.NewFromInt(300), decimal.RequireFromString("270.5")},
			{"(unmapped)", decimal.Zero, decimal.Zero},
		},
	}
}

func TestEncodeXLSXRoundTrip(t *testing.T) {
	repo := NewExportRepository()

	data, err := repo.EncodeXLSX(teamTable())
	require.NoError(t, err)

	table, err := spreadsheet.NewWorkbookRepository().Parse("team.xlsx", data)
	require.NoError(t, err)

	assert.Equal(t, "Team-wise Summary", table.Sheet)
	assert.Equal(t, []string{"Business Head", "Billed Amount", "Net Amount"}, table.Columns)
	assert.Equal(t, [][]string{{"H1", "300", "270.5"}, {"(unmapped)", "0", "0"}}, table.Rows)
}

func TestEncodeXLSXEmptyTableKeepsHeader(t *testing.T) {
	empty := entity.Table{Name: string(entity.ExportFiltered), Columns: []string{"Consultant", "Client"}}

	data, err := NewExportRepository().EncodeXLSX(empty)
	require.NoError(t, err)

	table, err := spreadsheet.NewWorkbookRepository().Parse("filtered.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Consultant", "Client"}, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestEncodeCSV(t *testing.T) {
	data, err := NewExportRepository().EncodeCSV(teamTable())
	require.NoError(t, err)

	assert.Equal(t, "Business Head,Billed Amount,Net Amount\nH1,300,270.5\n(unmapped),0,0\n", string(data))
}

func TestEncodeJSON(t *testing.T) {
	data, err := NewExportRepository().EncodeJSON(teamTable())
	require.NoError(t, err)

	var decoded struct {
		Name    string                   `json:"name"`
		Columns []string                 `json:"columns"`
		Rows    []map[string]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "team", decoded.Name)
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "H1", decoded.Rows[0]["Business Head"])
	assert.Equal(t, 270.5, decoded.Rows[0]["Net Amount"])
}

func TestExportToFilesUsesDeterministicNames(t *testing.T) {
	repo := NewExportRepository()
	dir := filepath.Join(t.TempDir(), "out")

	path, err := repo.ExportToXLSX(teamTable(), "team_wise_summary", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "team_wise_summary.xlsx"), path)

	again, err := repo.ExportToXLSX(teamTable(), "team_wise_summary", dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	csvPath, err := repo.ExportToCSV(teamTable(), "team_wise_summary", dir)
	require.NoError(t, err)
	assert.FileExists(t, csvPath)

	jsonPath, err := repo.ExportToJSON(teamTable(), "team_wise_summary", dir)
	require.NoError(t, err)
	assert.FileExists(t, jsonPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestExportFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewExportRepository().ExportToCSV(teamTable(), "team_wise_summary", filepath.Join(blocker, "sub"))
	require.Error(t, err)

	var exportErr *types.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, entity.ExportTeam, exportErr.Kind)
	assert.Equal(t, "csv", exportErr.Format)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExportDashboardToPDF(t *testing.T) {
	dir := t.TempDir()
	result := entity.DashboardResult{
		Totals: entity.Totals{
			Records:      2,
			BilledAmount: decimal.NewFromInt(300),
			NetAmount:    decimal.NewFromInt(270),
			ActualDays:   decimal.NewFromInt(8),
			TargetDays:   decimal.NewFromInt(9),
		},
		SourceRows: 3,
	}
	empty := entity.Table{Name: string(entity.ExportClient), Columns: []string{"Client", "Net Amount"}}

	path, err := NewExportRepository().ExportDashboardToPDF(result, []entity.Table{teamTable(), empty}, "dashboard_report", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dashboard_report.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}
