package types

import (
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
)

// Config represents the session presets that can be loaded from a file.
type Config struct {
	File       string                 `json:"file" yaml:"file" toml:"file"`
	Profile    string                 `json:"profile" yaml:"profile" toml:"profile"`
	Mapping    map[string]string      `json:"mapping" yaml:"mapping" toml:"mapping"`
	Filters    entity.FilterSelection `json:"filters" yaml:"filters" toml:"filters"`
	TrendBasis string                 `json:"trend_basis" yaml:"trend_basis" toml:"trend_basis"`
	ReportName string                 `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string               `json:"report_type" yaml:"report_type" toml:"report_type"`
	Exports    []string               `json:"exports" yaml:"exports" toml:"exports"`
	Dir        string                 `json:"dir" yaml:"dir" toml:"dir"`
	Rows       int                    `json:"rows" yaml:"rows" toml:"rows"`
}

// ReportFormats are the accepted --report-type values.
var ReportFormats = []string{"xlsx", "csv", "json", "pdf"}

// IsReportFormat reports whether format is one of ReportFormats (case-insensitive).
func IsReportFormat(format string) bool {
	for _, f := range ReportFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}
