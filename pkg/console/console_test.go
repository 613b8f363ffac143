package console

import (
	"testing"

	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

var _ types.ConsoleInterface = (*Console)(nil)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   string
	}{
		{0, 0, "0"},
		{-0.4, 0, "0"},
		{999, 0, "999"},
		{1000, 0, "1,000"},
		{270.5, 0, "271"},
		{1234567.2, 0, "1,234,567"},
		{-98765.0, 0, "-98,765"},
		{100000000, 0, "100,000,000"},
		{5, 1, "5.0"},
		{-0.01, 1, "0.0"},
		{1234.5, 2, "1,234.50"},
		{-1500.25, 2, "-1,500.25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in, tt.places), "FormatNumber(%v, %d)", tt.in, tt.places)
	}
}

func TestTableRender(t *testing.T) {
	table := NewConsole().CreateTable()
	table.AddColumn("Business Head")
	table.AddColumn("Net Amount")
	table.AddRow("H1", 270)

	out := table.Render()
	assert.Contains(t, out, "Business Head")
	assert.Contains(t, out, "H1")
	assert.Contains(t, out, "270")
}

func TestTrendNotice(t *testing.T) {
	assert.Equal(t, "Trend: no dated rows for the current selection", trendNotice("Trend", nil))
	assert.Equal(t, "Trend: all months are 0 for the current selection",
		trendNotice("Trend", []types.ChartPoint{{Label: "May FY2024", Value: 0}}))
}
