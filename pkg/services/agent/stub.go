package agent

import (
	"context"
	"fmt"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
	"github.com/de-tools/materiality-evals/pkg/services/extraction"
)

// StubAgent produces deterministic fake findings so the pipeline can run
// without credentials or network access.
type StubAgent struct{}

func NewStubAgent() *StubAgent {
	return &StubAgent{}
}

// Extract returns one canned material change per page in the batch.
func (s *StubAgent) Extract(_ context.Context, req extraction.Request) (domain.MaterialChangesReport, error) {
	report := domain.MaterialChangesReport{}
	for i, page := range req.PageNumbers {
		report.MaterialChanges = append(report.MaterialChanges, domain.MaterialChange{
			MaterialChange: fmt.Sprintf("Group sales increased on page %s", page),
			ReasonsForChange: []domain.ReasonForChange{
				{
					Reason:         "Volume growth in the core retail segment",
					SupportingText: fmt.Sprintf("Sales grew %d%% driven by volume growth.", 3+i),
					Reference: domain.Reference{
						FileName:   req.FileName,
						PageNumber: pageNumberOrZero(page),
					},
				},
			},
		})
	}
	return report, nil
}

func pageNumberOrZero(page string) int {
	var n int
	_, err := fmt.Sscanf(page, "%d", &n)
	if err != nil {
		return 0
	}
	return n
}
