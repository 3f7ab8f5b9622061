package domain

// EvaluationRow is one joined (ground truth, agent response) pair keyed by
// (document id, metric name). Nil pointers encode missing values: a metric the
// agent never extracted, or one we never expected.
type EvaluationRow struct {
	ID        string
	Name      string
	Expected  *float64
	Extracted *float64
}

// Metrics maps metric names to their computed scores.
type Metrics map[string]float64

const (
	MetricMaterialityPrecision = "materiality_precision"
	MetricMaterialityRecall    = "materiality_recall"
)
