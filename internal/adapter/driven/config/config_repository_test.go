package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFileFormats(t *testing.T) {
	files := map[string]string{
		"billing.toml": `
file = "may.xlsx"
trend_basis = "calendar"
report_type = ["xlsx", "pdf"]
exports = ["team"]

[mapping]
consultant = "Name"

[filters]
clients = ["X"]
empty_mode = "none"
`,
		"billing.yaml": `
file: may.xlsx
trend_basis: calendar
report_type: [xlsx, pdf]
exports: [team]
mapping:
  consultant: Name
filters:
  clients: [X]
  empty_mode: none
`,
		"billing.json": `{
  "file": "may.xlsx",
  "trend_basis": "calendar",
  "report_type": ["xlsx", "pdf"],
  "exports": ["team"],
  "mapping": {"consultant": "Name"},
  "filters": {"clients": ["X"], "empty_mode": "none"}
}`,
	}

	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := NewConfigRepository().LoadConfigFile(writeConfig(t, name, body))
			require.NoError(t, err)

			assert.Equal(t, "may.xlsx", cfg.File)
			assert.Equal(t, "calendar", cfg.TrendBasis)
			assert.Equal(t, []string{"xlsx", "pdf"}, cfg.ReportType)
			assert.Equal(t, []string{"team"}, cfg.Exports)
			assert.Equal(t, map[string]string{"consultant": "Name"}, cfg.Mapping)
			assert.Equal(t, []string{"X"}, cfg.Filters.Clients)
			assert.Equal(t, entity.EmptySelectsNone, cfg.Filters.EmptyMode)
		})
	}
}

func TestLoadConfigFileRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "billing.yaml", `
trend_basis: weekly
report_type: [docx]
exports: [everything]
mapping:
  fiscal_year: FY
`)

	_, err := NewConfigRepository().LoadConfigFile(path)
	require.Error(t, err)
	for _, msg := range []string{"trend_basis", "docx", "everything", "fiscal_year"} {
		assert.ErrorContains(t, err, msg)
	}
}

func TestLoadConfigFileAcceptsAllRows(t *testing.T) {
	cfg, err := NewConfigRepository().LoadConfigFile(writeConfig(t, "billing.toml", "rows = -1\n"))
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Rows)
}

func TestLoadConfigFileErrors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(writeConfig(t, "billing.ini", "file=x"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeConfig(t, "billing.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}
