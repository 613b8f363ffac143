package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Encoders ---

// EncodeXLSX gera uma pasta de trabalho com uma única planilha: cabeçalho na linha 1, dados a partir da linha 2.
func (r *ExportRepositoryImpl) EncodeXLSX(table entity.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := entity.ExportKind(table.Name).Title()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("error writing header row: %w", err)
	}

	if len(table.Columns) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("error creating header style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("error styling header row: %w", err)
		}
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = xlsxValue(cell)
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ExportRepositoryImpl) EncodeCSV(table entity.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cellText(cell)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJSON escreve cada linha como objeto; valores decimais saem como números.
func (r *ExportRepositoryImpl) EncodeJSON(table entity.Table) ([]byte, error) {
	rows := make([]map[string]interface{}, 0, len(table.Rows))
	for _, row := range table.Rows {
		obj := make(map[string]interface{}, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(row) {
				obj[col] = jsonValue(row[i])
			}
		}
		rows = append(rows, obj)
	}

	payload := struct {
		Name    string                   `json:"name"`
		Columns []string                 `json:"columns"`
		Rows    []map[string]interface{} `json:"rows"`
	}{Name: table.Name, Columns: table.Columns, Rows: rows}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding JSON: %w", err)
	}
	return data, nil
}

// --- Exportação para arquivos ---

func (r *ExportRepositoryImpl) ExportToXLSX(table entity.Table, filename, outputDir string) (string, error) {
	return r.exportTable(table, filename, outputDir, "xlsx", r.EncodeXLSX)
}

func (r *ExportRepositoryImpl) ExportToCSV(table entity.Table, filename, outputDir string) (string, error) {
	return r.exportTable(table, filename, outputDir, "csv", r.EncodeCSV)
}

func (r *ExportRepositoryImpl) ExportToJSON(table entity.Table, filename, outputDir string) (string, error) {
	return r.exportTable(table, filename, outputDir, "json", r.EncodeJSON)
}

func (r *ExportRepositoryImpl) exportTable(table entity.Table, filename, outputDir, ext string, encode func(entity.Table) ([]byte, error)) (string, error) {
	kind := entity.ExportKind(table.Name)
	fail := func(err error) (string, error) {
		return "", &types.ExportError{Kind: kind, Format: ext, Err: err}
	}

	outputFilename, err := generateFilename(filename, outputDir, ext)
	if err != nil {
		return fail(err)
	}
	data, err := encode(table)
	if err != nil {
		return fail(err)
	}
	if err := writeFileAtomic(outputFilename, data); err != nil {
		return fail(err)
	}
	return filepath.Abs(outputFilename)
}

// ExportDashboardToPDF gera o relatório do dashboard: métricas globais seguidas das tabelas informadas.
func (r *ExportRepositoryImpl) ExportDashboardToPDF(result entity.DashboardResult, tables []entity.Table, filename, outputDir string) (string, error) {
	fail := func(err error) (string, error) {
		return "", &types.ExportError{Kind: "dashboard", Format: "pdf", Err: err}
	}

	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return fail(err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Billing Dashboard (Go) | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	drawTitle := func(title string) {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
		pdf.Ln(3)
	}

	drawTable := func(table entity.Table) {
		drawTitle(entity.ExportKind(table.Name).Title())
		if len(table.Rows) == 0 {
			pdf.SetFont("Arial", "I", 10)
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
			pdf.Cell(0, 7, "No rows match the selected filters.")
			pdf.Ln(8)
			return
		}
		width := 190.0 / float64(len(table.Columns))

		pdf.SetFont("Arial", "B", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, col := range table.Columns {
			pdf.CellFormat(width, 7, tr(col), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range table.Rows {
			for i, cell := range row {
				align := "L"
				if _, ok := cell.(decimal.Decimal); ok {
					align = "R"
				}
				pdf.CellFormat(width, 6, tr(cellText(cell)), "", 0, align, false, 0, "")
				if i == len(table.Columns)-1 {
					break
				}
			}
			pdf.Ln(-1)
		}
	}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Consultant Billing Dashboard"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  %d of %d rows selected", result.Totals.Records, result.SourceRows)), "", 1, "L", true, 0, "")

	drawTitle("Key Metrics")
	pdf.SetFont("Arial", "", 10)
	metrics := [][2]string{
		{"Total Billed", result.Totals.BilledAmount.StringFixed(2)},
		{"Total Net Amount", result.Totals.NetAmount.StringFixed(2)},
		{"Actual Days", result.Totals.ActualDays.StringFixed(1)},
		{"Target Days", result.Totals.TargetDays.StringFixed(1)},
	}
	for _, m := range metrics {
		pdf.CellFormat(60, 7, tr(m[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(m[1]), "", 1, "R", false, 0, "")
	}

	for _, table := range tables {
		drawTable(table)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fail(fmt.Errorf("error rendering PDF: %w", err))
	}
	if err := writeFileAtomic(outputFilename, buf.Bytes()); err != nil {
		return fail(err)
	}
	return filepath.Abs(outputFilename)
}

// --- Helpers ---

// generateFilename monta o caminho final. O nome é determinístico: reexportar sobrescreve o arquivo anterior.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)), nil
}

// writeFileAtomic grava num arquivo temporário no mesmo diretório e renomeia.
// Em caso de falha o temporário é removido e o destino fica intacto.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error moving file into place: %w", err)
	}
	return nil
}

func cellText(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case decimal.Decimal:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}

func xlsxValue(v interface{}) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}

func jsonValue(v interface{}) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		return json.Number(d.String())
	}
	return v
}
