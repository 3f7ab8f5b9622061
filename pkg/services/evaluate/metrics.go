package evaluate

import (
	"math"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
)

// valuesMatch reports whether an expected/extracted pair agrees. Two missing
// values agree: a metric we never expected and never extracted is correct.
func valuesMatch(expected, extracted *float64) bool {
	if expected == nil && extracted == nil {
		return true
	}
	if expected == nil || extracted == nil {
		return false
	}
	return *expected == *extracted
}

// Precision is the fraction of rows with a non-missing extracted value whose
// extracted value equals the expected value. Returns NaN when the agent
// extracted nothing at all.
func Precision(rows []domain.EvaluationRow) float64 {
	matched, total := 0, 0
	for _, row := range rows {
		if row.Extracted == nil {
			continue
		}
		total++
		if valuesMatch(row.Expected, row.Extracted) {
			matched++
		}
	}
	if total == 0 {
		return math.NaN()
	}
	return float64(matched) / float64(total)
}

// Recall is the fraction of rows with a non-missing expected value whose
// extracted value equals the expected value. Returns NaN when the ground truth
// expects nothing at all.
func Recall(rows []domain.EvaluationRow) float64 {
	matched, total := 0, 0
	for _, row := range rows {
		if row.Expected == nil {
			continue
		}
		total++
		if valuesMatch(row.Expected, row.Extracted) {
			matched++
		}
	}
	if total == 0 {
		return math.NaN()
	}
	return float64(matched) / float64(total)
}

// ExtractionAccuracy is the fraction of all rows whose values agree, counting
// rows where both sides are missing as matches. Returns NaN for an empty table.
func ExtractionAccuracy(rows []domain.EvaluationRow) float64 {
	if len(rows) == 0 {
		return math.NaN()
	}
	matched := 0
	for _, row := range rows {
		if valuesMatch(row.Expected, row.Extracted) {
			matched++
		}
	}
	return float64(matched) / float64(len(rows))
}
