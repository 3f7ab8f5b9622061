// Package evaluate joins ground truth and agent responses into an evaluation
// table and scores the agent's extraction quality against it.
package evaluate

import (
	"fmt"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
	"github.com/de-tools/materiality-evals/pkg/models/store"
)

type rowKey struct {
	id   string
	name string
}

// CreateEvaluationTable outer-joins the ground truth and agent response
// records on (document id, metric name). The join must be exactly one-to-one:
// a duplicate key on either side is an error. Ground-truth rows come first in
// their original order, followed by agent responses that matched nothing.
func CreateEvaluationTable(
	groundTruth []store.GroundTruthRecord,
	agentResponses []store.AgentResponseRecord,
) ([]domain.EvaluationRow, error) {
	seen := make(map[rowKey]struct{}, len(groundTruth))
	for _, record := range groundTruth {
		key := rowKey{id: record.ID, name: record.Name}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("duplicate ground truth key (id=%s, name=%s)", record.ID, record.Name)
		}
		seen[key] = struct{}{}
	}

	responseByKey := make(map[rowKey]store.AgentResponseRecord, len(agentResponses))
	for _, record := range agentResponses {
		key := rowKey{id: record.ID, name: record.Name}
		if _, ok := responseByKey[key]; ok {
			return nil, fmt.Errorf("duplicate agent response key (id=%s, name=%s)", record.ID, record.Name)
		}
		responseByKey[key] = record
	}

	rows := make([]domain.EvaluationRow, 0, len(groundTruth))
	matched := make(map[rowKey]struct{}, len(groundTruth))

	for _, record := range groundTruth {
		key := rowKey{id: record.ID, name: record.Name}
		row := domain.EvaluationRow{
			ID:       record.ID,
			Name:     record.Name,
			Expected: record.LatestYoYPct,
		}
		if response, ok := responseByKey[key]; ok {
			row.Extracted = response.LatestYoYPct
			matched[key] = struct{}{}
		}
		rows = append(rows, row)
	}

	for _, record := range agentResponses {
		key := rowKey{id: record.ID, name: record.Name}
		if _, ok := matched[key]; ok {
			continue
		}
		rows = append(rows, domain.EvaluationRow{
			ID:        record.ID,
			Name:      record.Name,
			Extracted: record.LatestYoYPct,
		})
	}

	return rows, nil
}

// OverallMetrics computes the headline scores for an evaluation table.
func OverallMetrics(rows []domain.EvaluationRow) domain.Metrics {
	return domain.Metrics{
		// Among the material changes the agent identified, how many are correct?
		domain.MetricMaterialityPrecision: Precision(rows),
		// Among the material changes we expected, how many did the agent get?
		domain.MetricMaterialityRecall: Recall(rows),
	}
}
