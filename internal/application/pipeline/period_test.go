package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"march 31 closes previous fiscal year", date(2024, time.March, 31), 2023},
		{"april 1 opens fiscal year", date(2024, time.April, 1), 2024},
		{"january belongs to previous year", date(2024, time.January, 15), 2023},
		{"may belongs to same year", date(2024, time.May, 10), 2024},
		{"december belongs to same year", date(2023, time.December, 31), 2023},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FiscalYear(tt.date))
		})
	}

	assert.Equal(t, FiscalYear(date(2024, time.March, 31))+1, FiscalYear(date(2024, time.April, 1)))
}

func TestMonthOrderIsBijection(t *testing.T) {
	seen := make(map[int]string)
	for m := time.January; m <= time.December; m++ {
		label := date(2024, m, 1).Format("Jan")
		order := MonthOrder(label)
		require.GreaterOrEqual(t, order, 1)
		require.LessOrEqual(t, order, 12)
		_, dup := seen[order]
		require.False(t, dup, "order %d assigned twice", order)
		seen[order] = label
	}
	assert.Len(t, seen, 12)

	assert.Equal(t, 1, MonthOrder("Apr"))
	assert.Equal(t, 12, MonthOrder("Mar"))
	assert.Equal(t, MonthOrder("Dec")+1, MonthOrder("Jan"))
	assert.Equal(t, 0, MonthOrder("Foo"))
	assert.Equal(t, []string{"Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}, FiscalMonths())
}

func TestCalendarMonth(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		assert.Equal(t, int(m), calendarMonth(date(2024, m, 1).Format("Jan")))
	}
}

func TestDerive(t *testing.T) {
	d := date(2024, time.January, 15)
	p := Derive(&d)
	assert.True(t, p.Valid)
	assert.Equal(t, "Jan", p.Month)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, 2023, p.FiscalYear)
	assert.Equal(t, "Jan", p.FiscalMonth)
	assert.Equal(t, 10, p.MonthOrder)

	null := Derive(nil)
	assert.False(t, null.Valid)
	assert.Empty(t, null.Month)
	assert.Zero(t, null.Year)
	assert.Zero(t, null.MonthOrder)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-10", date(2024, time.May, 10)},
		{"2024-05-10 00:00:00", date(2024, time.May, 10)},
		{"5/10/2024", date(2024, time.May, 10)},
		{"05-10-24", date(2024, time.May, 10)},
		{"05/10/2024", date(2024, time.May, 10)},
		{"05-10-2024", date(2024, time.May, 10)},
		{"10-05-2024", date(2024, time.October, 5)},
		{"13/01/2024", date(2024, time.January, 13)},
		{"13-01-2024", date(2024, time.January, 13)},
		{"10 May 2024", date(2024, time.May, 10)},
		{"10-May-2024", date(2024, time.May, 10)},
		{"45422", date(2024, time.May, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDate(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Format("2006-01-02"), got.Format("2006-01-02"))
		})
	}

	for _, bad := range []string{"", "   ", "not a date", "2024-13-45", "-3"} {
		assert.Nil(t, ParseDate(bad), bad)
	}
}
