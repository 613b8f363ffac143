package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags([]string{
		"-f", "s3://billing/may.xlsx",
		"-m", "Client=Customer, Name",
		"--map", "Date=When",
		"--consultant", "A,B",
		"--fiscal-year", "2024",
		"--empty-selection", "none",
		"-y", "csv,pdf",
		"-e", "team",
		"-d", "reports",
		"--rows", "-1",
		"-p", "finance",
		"-i",
	}))

	args, err := app.parseArgs()
	require.NoError(t, err)

	assert.Equal(t, "s3://billing/may.xlsx", args.File)
	assert.Equal(t, []string{"Client=Customer, Name", "Date=When"}, args.Mapping)
	assert.Equal(t, []string{"A", "B"}, args.Consultants)
	assert.Equal(t, []string{"2024"}, args.FiscalYears)
	assert.Equal(t, "none", args.EmptySelection)
	assert.Equal(t, []string{"csv", "pdf"}, args.ReportType)
	assert.Equal(t, []string{"team"}, args.Exports)
	assert.True(t, filepath.IsAbs(args.Dir))
	assert.Equal(t, "reports", filepath.Base(args.Dir))
	assert.Equal(t, -1, args.Rows)
	assert.Equal(t, "finance", args.Profile)
	assert.True(t, args.Interactive)
	assert.False(t, args.ShowMapping)
}

func TestParseArgsLeavesDirEmpty(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags([]string{"--file", "billing.csv"}))

	args, err := app.parseArgs()
	require.NoError(t, err)
	assert.Empty(t, args.Dir)
	assert.Empty(t, args.ReportType)
	assert.Zero(t, args.Rows)
}
