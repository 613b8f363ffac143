package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogDebug(format string, a ...interface{})
	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	ProgressWithTotal(total int) ProgressHandle

	CreateTable() TableInterface
	DisplayMetrics(metrics []Metric)
	DisplayBarChart(title string, points []ChartPoint)
	DisplayTrendBars(title string, points []ChartPoint)

	Select(prompt string, options []string, defaultOption string) (string, error)
	MultiSelect(prompt string, options []string, defaults []string) ([]string, error)
	Confirm(prompt string, defaultValue bool) (bool, error)
	Input(prompt string, defaultValue string) (string, error)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// ProgressHandle é uma interface para atualizar uma barra de progresso.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// Metric is a labelled scalar shown in the key metrics panel.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ChartPoint representa um valor rotulado usado nos gráficos de barras e de tendência.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
