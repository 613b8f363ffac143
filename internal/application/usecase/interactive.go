package usecase

import (
	"context"
	"errors"

	"github.com/diillson/billing-dashboard-go/internal/application/pipeline"
	"github.com/diillson/billing-dashboard-go/internal/application/session"
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
)

const (
	actionShow    = "Show dashboard"
	actionFilters = "Change filters"
	actionTrend   = "Switch trend basis"
	actionExport  = "Export reports"
	actionUpload  = "Upload another file"
	actionQuit    = "Quit"
)

var menuActions = []string{actionShow, actionFilters, actionTrend, actionExport, actionUpload, actionQuit}

// RunInteractive drives the session through prompts: upload, mapping
// confirmation, filters, exports and re-upload.
func (uc *DashboardUseCase) RunInteractive(ctx context.Context, args *types.CLIArgs) error {
	resolved, err := uc.ResolveArgs(args)
	if err != nil {
		return err
	}

	sess := session.New()
	location := resolved.File
	overrides := resolved.Mapping
	initial := selectionFromArgs(resolved)

	for {
		if location == "" {
			location, err = uc.console.Input("Billing file (.xlsx, .csv or s3://bucket/key)", "")
			if err != nil {
				return err
			}
			if location == "" {
				return types.ErrNoInputFile
			}
		}

		table, err := uc.LoadTable(ctx, location, resolved.Profile)
		if err != nil {
			uc.console.LogError("%v", err)
			retry, promptErr := uc.console.Confirm("Try another file?", true)
			if promptErr != nil || !retry {
				return err
			}
			location = ""
			continue
		}

		guess := sess.Load(table)
		if err := uc.chooseMapping(sess, table, guess, overrides); err != nil {
			return err
		}

		sess.SetTrendBasis(entity.TrendBasis(resolved.TrendBasis))
		if err := uc.applySelection(sess, initial); err != nil {
			return err
		}

		next, err := uc.dashboardLoop(sess, resolved)
		if err != nil {
			return err
		}
		if next == "" {
			return nil
		}

		// Novo arquivo: mapeamento e filtros voltam ao padrão.
		location, overrides = next, nil
		initial = entity.FilterSelection{EmptyMode: initial.EmptyMode}
	}
}

// chooseMapping propõe o mapeamento e deixa o usuário trocar coluna por coluna
// até que a confirmação seja aceita pela sessão.
func (uc *DashboardUseCase) chooseMapping(sess *session.Session, table entity.RawTable, guess entity.ColumnMapping, overrides []string) error {
	mapping, err := pipeline.ParseOverrides(guess, overrides)
	if err != nil {
		uc.console.LogWarning("%v; starting from the suggested mapping", err)
		mapping = guess.Clone()
	}

	edit := false
	for {
		if !edit {
			uc.DisplayMapping(table, guess, mapping)
			ok, err := uc.console.Confirm("Use this column mapping?", true)
			if err != nil {
				return err
			}
			edit = !ok
		}

		if edit {
			for _, field := range entity.CanonicalFields {
				current := mapping[field]
				if !table.HasColumn(current) {
					current = ""
				}
				col, err := uc.console.Select("Column for "+field.DisplayName(), table.Columns, current)
				if err != nil {
					return err
				}
				mapping[field] = col
			}
		}

		err := uc.confirmMapping(sess, table, guess, mapping)
		if err == nil {
			return nil
		}
		var missing *types.MissingColumnError
		if !errors.As(err, &missing) {
			return err
		}
		edit = true
	}
}

// dashboardLoop returns the next file to load, or "" when the user quits.
func (uc *DashboardUseCase) dashboardLoop(sess *session.Session, args *types.CLIArgs) (string, error) {
	if err := uc.recomputeAndRender(sess, args.Rows); err != nil {
		return "", err
	}

	for {
		action, err := uc.console.Select("What next?", menuActions, actionShow)
		if err != nil {
			return "", err
		}

		switch action {
		case actionShow:
			if result, ok := sess.Result(); ok {
				uc.RenderDashboard(result, args.Rows)
			}

		case actionFilters:
			if err := uc.chooseFilters(sess); err != nil {
				return "", err
			}
			if err := uc.recomputeAndRender(sess, args.Rows); err != nil {
				return "", err
			}

		case actionTrend:
			basis, err := uc.console.Select("Trend basis", []string{string(entity.TrendFiscal), string(entity.TrendCalendar)}, string(entity.TrendFiscal))
			if err != nil {
				return "", err
			}
			sess.SetTrendBasis(entity.TrendBasis(basis))
			if err := uc.recomputeAndRender(sess, args.Rows); err != nil {
				return "", err
			}

		case actionExport:
			if err := uc.chooseExports(sess, args); err != nil {
				return "", err
			}

		case actionUpload:
			next, err := uc.console.Input("Billing file (.xlsx, .csv or s3://bucket/key)", "")
			if err != nil {
				return "", err
			}
			if next != "" {
				return next, nil
			}

		case actionQuit:
			return "", nil
		}
	}
}

func (uc *DashboardUseCase) recomputeAndRender(sess *session.Session, rows int) error {
	result, published, err := sess.Recompute()
	if err != nil {
		return err
	}
	if published {
		uc.RenderDashboard(result, rows)
	}
	return nil
}

// chooseFilters pergunta os valores de cada dimensão, partindo da seleção atual.
func (uc *DashboardUseCase) chooseFilters(sess *session.Session) error {
	result, ok := sess.Result()
	if !ok {
		return types.ErrNoDataset
	}

	current := sess.Selection()
	next := entity.FilterSelection{EmptyMode: current.EmptyMode}
	hint := " (none selected = all)"
	if current.EmptyMode == entity.EmptySelectsNone {
		hint = " (none selected = no rows)"
	}

	for _, dim := range entity.FilterDimensions {
		options := result.Options[dim]
		if len(options) == 0 {
			continue
		}

		chosen := make(map[string]bool)
		for _, v := range current.Values(dim) {
			chosen[pipeline.MemberKey(dim, v)] = true
		}
		defaults := make([]string, 0, len(chosen))
		for _, opt := range options {
			if chosen[pipeline.MemberKey(dim, opt)] {
				defaults = append(defaults, opt)
			}
		}

		values, err := uc.console.MultiSelect(dim.DisplayName()+hint, options, defaults)
		if err != nil {
			return err
		}
		next.Set(dim, values)
	}

	return uc.applySelection(sess, next)
}

func (uc *DashboardUseCase) chooseExports(sess *session.Session, args *types.CLIArgs) error {
	result, ok := sess.Result()
	if !ok {
		return types.ErrNoDataset
	}

	kindOptions := make([]string, 0, len(entity.ExportKinds))
	for _, k := range entity.ExportKinds {
		kindOptions = append(kindOptions, string(k))
	}
	kinds, err := uc.console.MultiSelect("Tables to export", kindOptions, []string{string(entity.ExportFiltered)})
	if err != nil {
		return err
	}
	formats, err := uc.console.MultiSelect("Formats", types.ReportFormats, []string{"xlsx"})
	if err != nil {
		return err
	}
	if len(kinds) == 0 || len(formats) == 0 {
		uc.console.LogWarning("Nothing selected, no files written")
		return nil
	}

	exportArgs := *args
	exportArgs.Exports = kinds
	exportArgs.ReportType = formats

	// Falhas de exportação já foram registradas; o dashboard continua.
	_ = uc.ExportReports(result, &exportArgs)
	return nil
}
