package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/materiality-evals/pkg/runtime/terminal/export"
	"github.com/de-tools/materiality-evals/pkg/services/dataset"
	"github.com/de-tools/materiality-evals/pkg/services/evaluate"
)

type EvaluateCmd struct {
	groundTruthPath string
	responsesDir    string
	tablePath       string
	reporter        *export.Reporter
}

func NewEvaluateCmd(reporter *export.Reporter) *cobra.Command {
	ec := &EvaluateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score agent responses against the ground truth",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.groundTruthPath, "ground-truth", "", "Path to the ground truth CSV")
	cmd.Flags().StringVar(&ec.responsesDir, "responses", "", "Directory of agent response JSON-lines files, one per document")
	cmd.Flags().StringVar(&ec.tablePath, "table", "", "Optional path to write the merged evaluation table CSV")

	_ = cmd.MarkFlagRequired("ground-truth")
	_ = cmd.MarkFlagRequired("responses")

	return cmd
}

func (ec *EvaluateCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	groundTruth, err := dataset.LoadGroundTruth(ec.groundTruthPath)
	if err != nil {
		return err
	}
	agentResponses, err := dataset.LoadAgentResponsesDir(ec.responsesDir)
	if err != nil {
		return err
	}
	logger.Info().
		Int("ground_truth", len(groundTruth)).
		Int("agent_responses", len(agentResponses)).
		Msg("building evaluation table")

	rows, err := evaluate.CreateEvaluationTable(groundTruth, agentResponses)
	if err != nil {
		return fmt.Errorf("failed to build evaluation table: %w", err)
	}

	if ec.tablePath != "" {
		if err := dataset.WriteEvaluationCSV(rows, ec.tablePath); err != nil {
			return err
		}
		logger.Info().Str("table", ec.tablePath).Msg("wrote evaluation table")
	}

	metrics := evaluate.OverallMetrics(rows)
	return ec.reporter.Handle(metrics, len(rows))
}
