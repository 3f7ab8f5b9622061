package export

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	metrics := domain.Metrics{
		domain.MetricMaterialityPrecision: 0.75,
		domain.MetricMaterialityRecall:    1.0,
	}

	require.NoError(t, reporter.Handle(metrics, 8))

	output := buf.String()
	assert.Contains(t, output, "Evaluation over 8 rows")
	assert.Contains(t, output, "materiality_precision: 0.7500")
	assert.Contains(t, output, "materiality_recall: 1.0000")
}

func TestReporter_Handle_NaNRendersAsNA(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	metrics := domain.Metrics{
		domain.MetricMaterialityPrecision: math.NaN(),
	}

	require.NoError(t, reporter.Handle(metrics, 0))
	assert.Contains(t, buf.String(), "materiality_precision: n/a")
}
