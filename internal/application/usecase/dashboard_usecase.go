package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/application/pipeline"
	"github.com/diillson/billing-dashboard-go/internal/application/session"
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
)

// defaultRows é o limite da tabela de detalhes quando nem flag nem config o definem.
const defaultRows = 20

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	sources      []repository.SourceRepository
	workbookRepo repository.WorkbookRepository
	exportRepo   repository.ExportRepository
	configRepo   repository.ConfigRepository
	console      types.ConsoleInterface
}

// NewDashboardUseCase creates a new dashboard use case.
// Sources are tried in order; the first that supports a location wins.
func NewDashboardUseCase(
	sources []repository.SourceRepository,
	workbookRepo repository.WorkbookRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		sources:      sources,
		workbookRepo: workbookRepo,
		exportRepo:   exportRepo,
		configRepo:   configRepo,
		console:      console,
	}
}

// ResolveArgs merges the config file (if any) under the command-line flags and
// validates the result. The caller's args are not modified.
func (uc *DashboardUseCase) ResolveArgs(args *types.CLIArgs) (*types.CLIArgs, error) {
	resolved := *args

	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		uc.console.LogDebug("Loaded settings from %s", args.ConfigFile)
		mergeConfig(&resolved, cfg)
	}

	if resolved.Rows == 0 {
		resolved.Rows = defaultRows
	}

	if err := validateArgs(&resolved); err != nil {
		return nil, err
	}
	return &resolved, nil
}

func mergeConfig(args *types.CLIArgs, cfg *types.Config) {
	pick := func(flag, file string) string {
		if flag != "" {
			return flag
		}
		return file
	}
	pickList := func(flag, file []string) []string {
		if len(flag) > 0 {
			return flag
		}
		return file
	}

	args.File = pick(args.File, cfg.File)
	args.Profile = pick(args.Profile, cfg.Profile)
	args.TrendBasis = pick(args.TrendBasis, cfg.TrendBasis)
	args.ReportName = pick(args.ReportName, cfg.ReportName)
	args.Dir = pick(args.Dir, cfg.Dir)
	args.EmptySelection = pick(args.EmptySelection, string(cfg.Filters.EmptyMode))

	args.ReportType = pickList(args.ReportType, cfg.ReportType)
	args.Exports = pickList(args.Exports, cfg.Exports)
	args.Consultants = pickList(args.Consultants, cfg.Filters.Consultants)
	args.Clients = pickList(args.Clients, cfg.Filters.Clients)
	args.BusinessHeads = pickList(args.BusinessHeads, cfg.Filters.BusinessHeads)
	args.Months = pickList(args.Months, cfg.Filters.Months)
	args.Years = pickList(args.Years, cfg.Filters.Years)
	args.FiscalYears = pickList(args.FiscalYears, cfg.Filters.FiscalYears)

	// Flags vêm depois: em caso de conflito, --map vence o arquivo.
	args.Mapping = append(pipeline.MappingFromConfig(cfg.Mapping), args.Mapping...)

	if args.Rows == 0 {
		args.Rows = cfg.Rows
	}
}

func validateArgs(args *types.CLIArgs) error {
	var errs []error

	args.TrendBasis = strings.ToLower(args.TrendBasis)
	switch entity.TrendBasis(args.TrendBasis) {
	case "", entity.TrendFiscal, entity.TrendCalendar:
	default:
		errs = append(errs, fmt.Errorf("--trend-basis must be fiscal or calendar, got %q", args.TrendBasis))
	}

	args.EmptySelection = strings.ToLower(args.EmptySelection)
	switch entity.EmptySelectionMode(args.EmptySelection) {
	case "", entity.EmptySelectsAll, entity.EmptySelectsNone:
	default:
		errs = append(errs, fmt.Errorf("--empty-selection must be all or none, got %q", args.EmptySelection))
	}

	formats := make([]string, 0, len(args.ReportType))
	for _, format := range args.ReportType {
		if !types.IsReportFormat(format) {
			errs = append(errs, fmt.Errorf("unknown report type %q (valid: %s)", format, strings.Join(types.ReportFormats, ", ")))
		}
		formats = append(formats, strings.ToLower(format))
	}
	args.ReportType = formats

	kinds := make([]string, 0, len(args.Exports))
	for _, kind := range args.Exports {
		kind = strings.ToLower(kind)
		if !entity.ExportKind(kind).Valid() {
			errs = append(errs, fmt.Errorf("unknown export %q", kind))
		}
		kinds = append(kinds, kind)
	}
	args.Exports = kinds

	return errors.Join(errs...)
}

// LoadTable fetches and parses the first sheet of the billing file at location.
func (uc *DashboardUseCase) LoadTable(ctx context.Context, location, profile string) (entity.RawTable, error) {
	if location == "" {
		return entity.RawTable{}, types.ErrNoInputFile
	}

	var source repository.SourceRepository
	for _, s := range uc.sources {
		if s.Supports(location) {
			source = s
			break
		}
	}
	if source == nil {
		return entity.RawTable{}, fmt.Errorf("no source can read %s", location)
	}

	status := uc.console.Status(fmt.Sprintf("Loading %s...", location))
	name, data, err := source.Fetch(ctx, profile, location)
	if err != nil {
		status.Stop()
		return entity.RawTable{}, err
	}

	table, err := uc.workbookRepo.Parse(name, data)
	status.Stop()
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("error loading %s: %w", location, err)
	}

	table.Types = pipeline.InferColumnTypes(table.Columns, table.Rows)
	uc.console.LogInfo("Loaded %d rows and %d columns from %s", len(table.Rows), len(table.Columns), location)
	return table, nil
}

// RunDashboard runs the whole pipeline once: load, map, filter, aggregate, render, export.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	resolved, err := uc.ResolveArgs(args)
	if err != nil {
		return err
	}

	table, err := uc.LoadTable(ctx, resolved.File, resolved.Profile)
	if err != nil {
		return err
	}

	sess := session.New()
	guess := sess.Load(table)

	mapping, err := pipeline.ParseOverrides(guess, resolved.Mapping)
	if err != nil {
		return err
	}

	if resolved.ShowMapping {
		uc.DisplayMapping(table, guess, mapping)
		return nil
	}

	if err := uc.confirmMapping(sess, table, guess, mapping); err != nil {
		return err
	}

	sess.SetTrendBasis(entity.TrendBasis(resolved.TrendBasis))
	if err := uc.applySelection(sess, selectionFromArgs(resolved)); err != nil {
		return err
	}

	result, _, err := sess.Recompute()
	if err != nil {
		return err
	}

	uc.RenderDashboard(result, resolved.Rows)

	if !wantsExport(resolved) {
		return nil
	}
	return uc.ExportReports(result, resolved)
}

// confirmMapping congela o mapeamento na sessão. Em caso de colunas ausentes,
// mostra o mapeamento completo para o usuário corrigir.
func (uc *DashboardUseCase) confirmMapping(sess *session.Session, table entity.RawTable, guess, mapping entity.ColumnMapping) error {
	uc.warnDuplicateColumns(mapping)

	records, err := sess.ConfirmMapping(mapping)
	if err != nil {
		var missing *types.MissingColumnError
		if errors.As(err, &missing) {
			uc.console.LogError("%s", err)
			uc.DisplayMapping(table, guess, mapping)
			uc.console.LogInfo("Fix the mapping with --map Field=Column (e.g. --map \"Client=Customer Name\")")
		}
		return err
	}

	uc.console.LogDebug("Confirmed mapping: %s", mapping)
	uc.reportParseIssues(records)
	return nil
}

func (uc *DashboardUseCase) applySelection(sess *session.Session, sel entity.FilterSelection) error {
	unknown, err := sess.SetSelection(sel)
	if err != nil {
		return err
	}
	for _, dim := range entity.FilterDimensions {
		if values := unknown[dim]; len(values) > 0 {
			uc.console.LogWarning("%s filter values not present in this file match no rows: %s",
				dim.DisplayName(), strings.Join(values, ", "))
		}
	}
	return nil
}

func (uc *DashboardUseCase) warnDuplicateColumns(mapping entity.ColumnMapping) {
	dups := pipeline.DuplicateColumns(mapping)
	for _, col := range sortedKeys(dups) {
		names := make([]string, 0, len(dups[col]))
		for _, f := range dups[col] {
			names = append(names, f.DisplayName())
		}
		uc.console.LogWarning("Column %q is mapped to several fields: %s", col, strings.Join(names, ", "))
	}
}

// reportParseIssues resume datas e números que não puderam ser interpretados.
func (uc *DashboardUseCase) reportParseIssues(records []entity.CanonicalRecord) {
	undated, invalid := 0, 0
	for _, rec := range records {
		if rec.Date == nil {
			undated++
			uc.console.LogDebug("Row %d: missing or unparseable date", rec.Row)
		}
		if len(rec.Invalid) > 0 {
			invalid++
			names := make([]string, 0, len(rec.Invalid))
			for _, f := range rec.Invalid {
				names = append(names, f.DisplayName())
			}
			uc.console.LogDebug("Row %d: non-numeric %s counted as 0", rec.Row, strings.Join(names, ", "))
		}
	}

	if undated > 0 {
		uc.console.LogWarning("%d rows have no valid date and are left out of monthly summaries", undated)
	}
	if invalid > 0 {
		uc.console.LogWarning("%d rows have non-numeric amounts that were counted as 0", invalid)
	}
}

func selectionFromArgs(args *types.CLIArgs) entity.FilterSelection {
	mode := entity.EmptySelectionMode(args.EmptySelection)
	if mode == "" {
		mode = entity.EmptySelectsAll
	}
	return entity.FilterSelection{
		Consultants:   args.Consultants,
		Clients:       args.Clients,
		BusinessHeads: args.BusinessHeads,
		Months:        args.Months,
		Years:         args.Years,
		FiscalYears:   args.FiscalYears,
		EmptyMode:     mode,
	}
}
