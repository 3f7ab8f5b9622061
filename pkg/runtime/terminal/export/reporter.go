package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"text/template"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
)

// Reporter renders evaluation results to the console in a formatted text
// form.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type metricsView struct {
	Rows    int
	Metrics []metricView
}

type metricView struct {
	Name  string
	Value string
}

// Handle prints the overall metrics alongside the size of the evaluation
// table they were computed over.
func (c *Reporter) Handle(metrics domain.Metrics, rows int) error {
	tmpl := `
Evaluation over {{.Rows}} rows
{{range .Metrics}}
- {{.Name}}: {{.Value}}
{{end}}
`
	t, err := template.New("metrics").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	view := metricsView{Rows: rows}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := "n/a"
		if !math.IsNaN(metrics[name]) {
			value = fmt.Sprintf("%.4f", metrics[name])
		}
		view.Metrics = append(view.Metrics, metricView{Name: name, Value: value})
	}

	return t.Execute(c.writer, view)
}
