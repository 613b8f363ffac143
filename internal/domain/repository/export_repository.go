package repository

import (
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	// Encoders em memória (uma planilha, cabeçalho na ordem das colunas)
	EncodeXLSX(table entity.Table) ([]byte, error)
	EncodeCSV(table entity.Table) ([]byte, error)
	EncodeJSON(table entity.Table) ([]byte, error)

	ExportToXLSX(table entity.Table, filename, outputDir string) (string, error)
	ExportToCSV(table entity.Table, filename, outputDir string) (string, error)
	ExportToJSON(table entity.Table, filename, outputDir string) (string, error)

	// Relatório completo do dashboard
	ExportDashboardToPDF(result entity.DashboardResult, tables []entity.Table, filename, outputDir string) (string, error)
}
