package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/xuri/excelize/v2"
)

// WorkbookRepositoryImpl implementa o WorkbookRepository.
type WorkbookRepositoryImpl struct{}

// NewWorkbookRepository cria uma nova implementação do WorkbookRepository.
func NewWorkbookRepository() repository.WorkbookRepository {
	return &WorkbookRepositoryImpl{}
}

// Parse lê apenas a primeira planilha. A primeira linha é o cabeçalho.
func (r *WorkbookRepositoryImpl) Parse(name string, data []byte) (entity.RawTable, error) {
	var (
		sheet string
		rows  [][]string
		err   error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		sheet, rows, err = readXLSX(data)
	case ".csv":
		sheet, rows, err = readCSV(data)
	default:
		return entity.RawTable{}, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, name)
	}
	if err != nil {
		return entity.RawTable{}, err
	}

	return buildTable(name, sheet, rows)
}

func readXLSX(data []byte) (string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, types.ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	return sheets[0], rows, nil
}

func readCSV(data []byte) (string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return "", nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return "", rows, nil
}

// buildTable normaliza o cabeçalho e alinha todas as linhas à largura dele.
// Linhas totalmente vazias são descartadas.
func buildTable(source, sheet string, rows [][]string) (entity.RawTable, error) {
	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return entity.RawTable{}, types.ErrEmptyWorkbook
	}

	columns := headerNames(rows[start])
	table := entity.RawTable{
		Source:  source,
		Sheet:   sheet,
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)-start-1),
	}

	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		cells := make([]string, len(columns))
		copy(cells, row)
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// headerNames nomeia colunas sem título e desambigua nomes repetidos ("Amount", "Amount.1").
func headerNames(header []string) []string {
	last := len(header)
	for last > 0 && strings.TrimSpace(header[last-1]) == "" {
		last--
	}

	columns := make([]string, last)
	seen := make(map[string]int, last)
	for i := 0; i < last; i++ {
		name := strings.TrimSpace(header[i])
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		columns[i] = name
	}
	return columns
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
