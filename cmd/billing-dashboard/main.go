package main

import (
	"fmt"
	"os"

	"github.com/diillson/billing-dashboard-go/internal/adapter/driven/aws"
	"github.com/diillson/billing-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/billing-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/billing-dashboard-go/internal/adapter/driven/spreadsheet"
	"github.com/diillson/billing-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/billing-dashboard-go/internal/application/usecase"
	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/billing-dashboard-go/pkg/console"
	"github.com/diillson/billing-dashboard-go/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	// s3:// primeiro; a fonte local aceita qualquer outro caminho.
	sources := []repository.SourceRepository{
		aws.NewS3Repository(),
		spreadsheet.NewLocalSource(),
	}

	dashboardUseCase := usecase.NewDashboardUseCase(
		sources,
		spreadsheet.NewWorkbookRepository(),
		export.NewExportRepository(),
		config.NewConfigRepository(),
		console.NewConsole(),
	)

	app.SetDashboardUseCase(dashboardUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
