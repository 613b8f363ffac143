package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogDebug só aparece com --debug (pterm.EnableDebugMessages).
func (c *Console) LogDebug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// progressHandle é uma implementação do ProgressHandle.
type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

func (c *Console) ProgressWithTotal(total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Exporting reports").
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &progressHandle{bar: bar}
}

func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

func (h *progressHandle) Stop() {
	if h.bar != nil {
		h.bar.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayMetrics mostra as métricas principais lado a lado, uma caixa por métrica.
func (c *Console) DisplayMetrics(metrics []types.Metric) {
	row := make([]pterm.Panel, 0, len(metrics))
	for _, m := range metrics {
		box := pterm.DefaultBox.
			WithTitle(m.Label).
			WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
			Sprint(BrightGreen(m.Value))
		row = append(row, pterm.Panel{Data: box})
	}

	rendered, _ := pterm.DefaultPanel.WithPanels(pterm.Panels{row}).WithPadding(2).Srender()
	fmt.Println("\n" + rendered)
}

// DisplayBarChart desenha barras horizontais proporcionais ao maior valor absoluto.
func (c *Console) DisplayBarChart(title string, points []types.ChartPoint) {
	if len(points) == 0 {
		pterm.Warning.Printfln("%s: no data for the current selection", title)
		return
	}

	maxValue := 0.0
	for _, p := range points {
		maxValue = math.Max(maxValue, math.Abs(p.Value))
	}

	tableData := pterm.TableData{{"", "Amount", ""}}
	for _, p := range points {
		bar := ""
		if maxValue > 0 {
			bar = strings.Repeat("█", int(math.Abs(p.Value)/maxValue*40))
		}
		colored := pterm.FgBlue.Sprint(bar)
		if p.Value < 0 {
			colored = pterm.FgRed.Sprint(bar)
		}
		tableData = append(tableData, []string{p.Label, FormatNumber(p.Value, 0), colored})
	}

	renderedTable, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
	fmt.Println("\n" + panel)
}

// DisplayTrendBars exibe a tendência mensal com a variação em relação ao mês anterior.
// Crescimento é verde e queda é vermelha.
func (c *Console) DisplayTrendBars(title string, points []types.ChartPoint) {
	if len(points) == 0 {
		pterm.Warning.Println(trendNotice(title, points))
		return
	}

	maxValue := 0.0
	for _, p := range points {
		maxValue = math.Max(maxValue, math.Abs(p.Value))
	}

	if maxValue == 0 {
		pterm.Warning.Println(trendNotice(title, points))
		return
	}

	tableData := pterm.TableData{
		{"Month", "Amount", "", "MoM Change"},
	}

	var prev *float64

	for _, p := range points {
		barLength := int((math.Abs(p.Value) / maxValue) * 40)
		bar := strings.Repeat("█", barLength)

		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if prev != nil {
			switch {
			case math.Abs(*prev) < 0.01:
				if math.Abs(p.Value) < 0.01 {
					change = pterm.FgYellow.Sprint("0%")
					barColor = pterm.FgYellow.Sprint(bar)
				} else {
					change = pterm.FgGreen.Sprint("N/A")
					barColor = pterm.FgGreen.Sprint(bar)
				}
			default:
				changePercent := ((p.Value - *prev) / math.Abs(*prev)) * 100.0

				switch {
				case math.Abs(changePercent) < 0.01:
					change = pterm.FgYellow.Sprint("0%")
					barColor = pterm.FgYellow.Sprint(bar)
				case changePercent > 999:
					change = pterm.FgGreen.Sprint(">+999%")
					barColor = pterm.FgGreen.Sprint(bar)
				case changePercent < -999:
					change = pterm.FgRed.Sprint(">-999%")
					barColor = pterm.FgRed.Sprint(bar)
				case changePercent > 0:
					change = pterm.FgGreen.Sprintf("+%.2f%%", changePercent)
					barColor = pterm.FgGreen.Sprint(bar)
				default:
					change = pterm.FgRed.Sprintf("%.2f%%", changePercent)
					barColor = pterm.FgRed.Sprint(bar)
				}
			}
		}

		tableData = append(tableData, []string{
			p.Label,
			FormatNumber(p.Value, 0),
			barColor,
			change,
		})

		current := p.Value
		prev = &current
	}

	renderedTable, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
	fmt.Println("\n" + panel)
}

// trendNotice explica por que a tendência não tem barras.
func trendNotice(title string, points []types.ChartPoint) string {
	if len(points) == 0 {
		return title + ": no dated rows for the current selection"
	}
	return title + ": all months are 0 for the current selection"
}

// --- Prompts interativos ---

func (c *Console) Select(prompt string, options []string, defaultOption string) (string, error) {
	printer := pterm.DefaultInteractiveSelect.WithOptions(options).WithMaxHeight(15)
	if defaultOption != "" {
		printer = printer.WithDefaultOption(defaultOption)
	}
	return printer.Show(prompt)
}

func (c *Console) MultiSelect(prompt string, options []string, defaults []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultOptions(defaults).
		WithMaxHeight(15).
		Show(prompt)
}

func (c *Console) Confirm(prompt string, defaultValue bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(defaultValue).Show(prompt)
}

func (c *Console) Input(prompt string, defaultValue string) (string, error) {
	value, err := pterm.DefaultInteractiveTextInput.Show(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return defaultValue, nil
	}
	return strings.TrimSpace(value), nil
}

// numberFormats são os padrões do humanize por número de casas decimais.
var numberFormats = []string{"#,###.", "#,###.#", "#,###.##"}

// FormatNumber agrupa milhares e fixa as casas decimais (0 a 2): FormatNumber(1234.5, 2) == "1,234.50".
// Valores que arredondam para zero não levam sinal.
func FormatNumber(v float64, places int) string {
	places = max(0, min(places, len(numberFormats)-1))
	if math.Abs(v) < 0.5*math.Pow10(-places) {
		v = 0
	}
	return humanize.FormatFloat(numberFormats[places], v)
}
