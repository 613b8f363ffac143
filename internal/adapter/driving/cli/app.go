package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/diillson/billing-dashboard-go/internal/application/usecase"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/diillson/billing-dashboard-go/pkg/version"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:   "billing-dashboard",
		Short: "Consultant Billing Dashboard CLI",
		Long: "Loads a billing workbook (.xlsx or .csv, local or s3://bucket/key), maps its columns onto the\n" +
			"billing schema, filters rows and shows metrics, charts and summaries. Results can be exported.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Billing Dashboard version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("file", "f", "", "Billing workbook to load: .xlsx or .csv, local path or s3://bucket/key")
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringArrayP("map", "m", nil, "Column mapping override, e.g. --map \"Client=Customer Name\" (repeatable)")
	flags.StringSlice("consultant", nil, "Only include these consultants (comma-separated)")
	flags.StringSlice("client", nil, "Only include these clients (comma-separated)")
	flags.StringSlice("business-head", nil, "Only include these business heads (comma-separated)")
	flags.StringSlice("month", nil, "Only include these months, e.g. Apr,May")
	flags.StringSlice("year", nil, "Only include these calendar years")
	flags.StringSlice("fiscal-year", nil, "Only include these fiscal years (April to March)")
	flags.String("empty-selection", "", "Meaning of a filter with no values: all (default) or none")
	flags.String("trend-basis", "", "Monthly trend grouping: fiscal (default) or calendar")
	flags.StringP("report-name", "n", "", "Prefix for exported file names")
	flags.StringSliceP("report-type", "y", nil, "Export formats: xlsx, csv, json, pdf (default xlsx)")
	flags.StringSliceP("export", "e", nil, "Tables to export: filtered, month, team, consultant, client (default all)")
	flags.StringP("dir", "d", "", "Directory to save the exported files (default: current directory)")
	flags.Int("rows", 0, "Detail rows to display (default 20, negative shows all)")
	flags.StringP("profile", "p", "", "AWS profile used to read s3:// files")
	flags.Bool("show-mapping", false, "Print the proposed column mapping and exit")
	flags.BoolP("interactive", "i", false, "Choose mapping, filters and exports through prompts")
	flags.Bool("debug", false, "Show debug messages (unparseable dates, non-numeric cells)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	file, _ := flags.GetString("file")
	configFile, _ := flags.GetString("config-file")
	mapping, _ := flags.GetStringArray("map")
	consultants, _ := flags.GetStringSlice("consultant")
	clients, _ := flags.GetStringSlice("client")
	businessHeads, _ := flags.GetStringSlice("business-head")
	months, _ := flags.GetStringSlice("month")
	years, _ := flags.GetStringSlice("year")
	fiscalYears, _ := flags.GetStringSlice("fiscal-year")
	emptySelection, _ := flags.GetString("empty-selection")
	trendBasis, _ := flags.GetString("trend-basis")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	exports, _ := flags.GetStringSlice("export")
	dir, _ := flags.GetString("dir")
	rows, _ := flags.GetInt("rows")
	profile, _ := flags.GetString("profile")
	showMapping, _ := flags.GetBool("show-mapping")
	interactive, _ := flags.GetBool("interactive")
	debug, _ := flags.GetBool("debug")

	// Sem --dir o diretório pode vir do arquivo de configuração; o padrão final é o diretório atual.
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:     configFile,
		File:           file,
		Profile:        profile,
		Mapping:        mapping,
		Consultants:    consultants,
		Clients:        clients,
		BusinessHeads:  businessHeads,
		Months:         months,
		Years:          years,
		FiscalYears:    fiscalYears,
		EmptySelection: emptySelection,
		TrendBasis:     trendBasis,
		ReportName:     reportName,
		ReportType:     reportType,
		Exports:        exports,
		Dir:            dir,
		Rows:           rows,
		ShowMapping:    showMapping,
		Interactive:    interactive,
		Debug:          debug,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	if cliArgs.Debug {
		pterm.EnableDebugMessages()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cliArgs.Interactive {
		return app.dashboardUseCase.RunInteractive(ctx, cliArgs)
	}
	return app.dashboardUseCase.RunDashboard(ctx, cliArgs)
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}
