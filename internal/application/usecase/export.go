package usecase

import (
	"errors"
	"fmt"

	"github.com/diillson/billing-dashboard-go/internal/application/pipeline"
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
)

const pdfReportName = "dashboard_report"

// pdfTables são as tabelas incluídas no relatório PDF, nesta ordem.
var pdfTables = []entity.ExportKind{entity.ExportMonth, entity.ExportTeam, entity.ExportConsultant, entity.ExportClient}

type exportJob struct {
	kind   entity.ExportKind
	format string
	name   string
}

func wantsExport(args *types.CLIArgs) bool {
	return len(args.Exports) > 0 || len(args.ReportType) > 0 || args.ReportName != ""
}

// exportBaseName returns the deterministic filename (without extension) of kind.
func exportBaseName(reportName string, kind entity.ExportKind) string {
	if reportName == "" {
		return kind.FileName()
	}
	return reportName + "_" + kind.FileName()
}

// planExports expande tipos de exportação × formatos. Sem --export, todas as
// tabelas são exportadas; sem --report-type, o formato é xlsx. O PDF é um único relatório.
func planExports(args *types.CLIArgs) []exportJob {
	kinds := make([]entity.ExportKind, 0, len(entity.ExportKinds))
	for _, k := range args.Exports {
		kinds = append(kinds, entity.ExportKind(k))
	}
	if len(kinds) == 0 {
		kinds = entity.ExportKinds
	}

	formats := args.ReportType
	if len(formats) == 0 {
		formats = []string{"xlsx"}
	}

	var jobs []exportJob
	seen := make(map[string]bool)
	for _, format := range formats {
		if seen[format] {
			continue
		}
		seen[format] = true

		if format == "pdf" {
			name := args.ReportName
			if name == "" {
				name = pdfReportName
			}
			jobs = append(jobs, exportJob{format: format, name: name})
			continue
		}
		for _, kind := range kinds {
			jobs = append(jobs, exportJob{kind: kind, format: format, name: exportBaseName(args.ReportName, kind)})
		}
	}
	return jobs
}

// ExportReports writes every requested export. A failure does not stop the
// others; all failures are logged and returned joined.
func (uc *DashboardUseCase) ExportReports(result entity.DashboardResult, args *types.CLIArgs) error {
	jobs := planExports(args)
	if len(jobs) == 0 {
		return nil
	}

	var (
		written []string
		errs    []error
	)

	progress := uc.console.ProgressWithTotal(len(jobs))
	for _, job := range jobs {
		path, err := uc.runExport(job, result, args.Dir)
		if err != nil {
			errs = append(errs, err)
		} else {
			written = append(written, path)
		}
		progress.Increment()
	}
	progress.Stop()

	for _, path := range written {
		uc.console.LogSuccess("Exported %s", path)
	}
	for _, err := range errs {
		uc.console.LogError("%v", err)
	}
	return errors.Join(errs...)
}

func (uc *DashboardUseCase) runExport(job exportJob, result entity.DashboardResult, dir string) (string, error) {
	if job.format == "pdf" {
		tables := make([]entity.Table, 0, len(pdfTables))
		for _, kind := range pdfTables {
			table, _ := pipeline.TableFor(kind, result)
			tables = append(tables, table)
		}
		return uc.exportRepo.ExportDashboardToPDF(result, tables, job.name, dir)
	}

	table, ok := pipeline.TableFor(job.kind, result)
	if !ok {
		return "", &types.ExportError{Kind: job.kind, Format: job.format, Err: errors.New("unknown export kind")}
	}

	switch job.format {
	case "xlsx":
		return uc.exportRepo.ExportToXLSX(table, job.name, dir)
	case "csv":
		return uc.exportRepo.ExportToCSV(table, job.name, dir)
	case "json":
		return uc.exportRepo.ExportToJSON(table, job.name, dir)
	}
	return "", &types.ExportError{Kind: job.kind, Format: job.format, Err: fmt.Errorf("unsupported report type %q", job.format)}
}
