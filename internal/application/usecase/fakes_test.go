package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/billing-dashboard-go/internal/adapter/driven/spreadsheet"
	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
)

const scenarioCSV = `Consultant,Client,Business Head,Date,Billed Amount,Net Amount,Actual Days,Target Days
A,X,T1,2024-05-10,100,90,5,5
B,X,T1,2024-01-15,200,180,3,4
`

var errScriptExhausted = errors.New("no scripted answer left")

// fakeConsole grava tudo o que é exibido e responde prompts a partir de roteiros.
// Uma resposta vazia no roteiro significa "aceitar o padrão".
type fakeConsole struct {
	logs    map[string][]string
	printed []string
	metrics [][]types.Metric
	charts  map[string][]types.ChartPoint

	selects  []string
	multi    [][]string
	confirms []bool
	inputs   []string
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{
		logs:   make(map[string][]string),
		charts: make(map[string][]types.ChartPoint),
	}
}

func (f *fakeConsole) log(level, format string, a ...interface{}) {
	f.logs[level] = append(f.logs[level], fmt.Sprintf(format, a...))
}

func (f *fakeConsole) logged(level, substr string) bool {
	for _, msg := range f.logs[level] {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func (f *fakeConsole) Print(a ...interface{})                 { f.printed = append(f.printed, fmt.Sprint(a...)) }
func (f *fakeConsole) Printf(format string, a ...interface{}) { f.printed = append(f.printed, fmt.Sprintf(format, a...)) }
func (f *fakeConsole) Println(a ...interface{})               { f.printed = append(f.printed, fmt.Sprint(a...)) }

func (f *fakeConsole) LogDebug(format string, a ...interface{})   { f.log("debug", format, a...) }
func (f *fakeConsole) LogInfo(format string, a ...interface{})    { f.log("info", format, a...) }
func (f *fakeConsole) LogWarning(format string, a ...interface{}) { f.log("warning", format, a...) }
func (f *fakeConsole) LogError(format string, a ...interface{})   { f.log("error", format, a...) }
func (f *fakeConsole) LogSuccess(format string, a ...interface{}) { f.log("success", format, a...) }

type nopHandle struct{}

func (nopHandle) Update(string) {}
func (nopHandle) Increment()    {}
func (nopHandle) Stop()         {}

func (f *fakeConsole) Status(string) types.StatusHandle            { return nopHandle{} }
func (f *fakeConsole) ProgressWithTotal(int) types.ProgressHandle  { return nopHandle{} }
func (f *fakeConsole) DisplayMetrics(metrics []types.Metric)       { f.metrics = append(f.metrics, metrics) }
func (f *fakeConsole) DisplayBarChart(t string, p []types.ChartPoint)  { f.charts[t] = p }
func (f *fakeConsole) DisplayTrendBars(t string, p []types.ChartPoint) { f.charts[t] = p }

func (f *fakeConsole) CreateTable() types.TableInterface {
	return &fakeTable{}
}

func (f *fakeConsole) Select(_ string, options []string, defaultOption string) (string, error) {
	if len(f.selects) == 0 {
		return "", errScriptExhausted
	}
	answer := f.selects[0]
	f.selects = f.selects[1:]
	if answer == "" {
		return defaultOption, nil
	}
	for _, opt := range options {
		if opt == answer {
			return answer, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q is not an option", answer)
}

func (f *fakeConsole) MultiSelect(_ string, _ []string, defaults []string) ([]string, error) {
	if len(f.multi) == 0 {
		return defaults, nil
	}
	answer := f.multi[0]
	f.multi = f.multi[1:]
	if answer == nil {
		return defaults, nil
	}
	return answer, nil
}

func (f *fakeConsole) Confirm(_ string, defaultValue bool) (bool, error) {
	if len(f.confirms) == 0 {
		return defaultValue, nil
	}
	answer := f.confirms[0]
	f.confirms = f.confirms[1:]
	return answer, nil
}

func (f *fakeConsole) Input(_ string, defaultValue string) (string, error) {
	if len(f.inputs) == 0 {
		return defaultValue, nil
	}
	answer := f.inputs[0]
	f.inputs = f.inputs[1:]
	return answer, nil
}

type fakeTable struct {
	columns []string
	rows    [][]string
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }

func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}

func (t *fakeTable) Render() string {
	lines := []string{strings.Join(t.columns, " | ")}
	for _, r := range t.rows {
		lines = append(lines, strings.Join(r, " | "))
	}
	return strings.Join(lines, "\n")
}

type fakeSource struct {
	files map[string]string
}

func (s *fakeSource) Supports(string) bool { return true }

func (s *fakeSource) Fetch(_ context.Context, _ string, location string) (string, []byte, error) {
	body, ok := s.files[location]
	if !ok {
		return "", nil, fmt.Errorf("error accessing file: %s not found", location)
	}
	return location, []byte(body), nil
}

type fakeConfigRepo struct {
	cfg *types.Config
	err error
}

func (r *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) {
	return r.cfg, r.err
}

func newTestUseCase(console *fakeConsole, files map[string]string, cfg *types.Config) *DashboardUseCase {
	return NewDashboardUseCase(
		[]repository.SourceRepository{&fakeSource{files: files}},
		spreadsheet.NewWorkbookRepository(),
		export.NewExportRepository(),
		&fakeConfigRepo{cfg: cfg},
		console,
	)
}

func (f *fakeConsole) lastMetricValues() []string {
	if len(f.metrics) == 0 {
		return nil
	}
	last := f.metrics[len(f.metrics)-1]
	values := make([]string, len(last))
	for i, m := range last {
		values[i] = m.Value
	}
	return values
}

func labels(points []types.ChartPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}
