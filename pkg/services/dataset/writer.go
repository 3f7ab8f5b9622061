// Package dataset reads and writes the files that make up an evaluation
// dataset: structured reports, flattened CSV tables, ground truth and agent
// responses.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
	"github.com/de-tools/materiality-evals/pkg/models/store"
)

var reasonHeader = []string{
	"material_change",
	"reason",
	"supporting_text",
	"reference_file_name",
	"reference_page_number",
	"id",
}

// WriteReportJSON writes the structured report as indented JSON. A report
// with no findings still carries an empty material_changes array, never null.
func WriteReportJSON(report domain.MaterialChangesReport, path string) error {
	if report.MaterialChanges == nil {
		report.MaterialChanges = []domain.MaterialChange{}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report JSON: %w", err)
	}
	return nil
}

// WriteReportCSV writes the flattened one-row-per-reason table.
func WriteReportCSV(records []store.ReasonRecord, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report CSV: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(reasonHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.MaterialChange,
			record.Reason,
			record.SupportingText,
			record.ReferenceFileName,
			strconv.Itoa(record.ReferencePageNumber),
			record.ID,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report CSV: %w", err)
	}
	return nil
}

var evaluationHeader = []string{
	"id",
	"name",
	"latest_yoy_pct_ground_truth",
	"latest_yoy_pct_agent_response",
}

// WriteEvaluationCSV writes the merged evaluation table. Missing values
// become empty cells.
func WriteEvaluationCSV(rows []domain.EvaluationRow, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create evaluation CSV: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(evaluationHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.ID, row.Name, formatValue(row.Expected), formatValue(row.Extracted)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush evaluation CSV: %w", err)
	}
	return nil
}

func formatValue(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// CopySource copies the source document into the dataset directory so the
// dataset stays self-contained.
func CopySource(sourcePath, datasetDir string) error {
	in, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", sourcePath, err)
	}
	defer in.Close()

	targetPath := filepath.Join(datasetDir, filepath.Base(sourcePath))
	out, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", targetPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy source to %s: %w", targetPath, err)
	}
	return nil
}
