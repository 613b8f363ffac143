package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	File           string
	Profile        string
	Mapping        []string
	Consultants    []string
	Clients        []string
	BusinessHeads  []string
	Months         []string
	Years          []string
	FiscalYears    []string
	EmptySelection string
	TrendBasis     string
	ReportName     string
	ReportType     []string
	Exports        []string
	Dir            string
	Rows           int
	ShowMapping    bool
	Interactive    bool
	Debug          bool
}
