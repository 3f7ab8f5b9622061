package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/materiality-evals/pkg/models/store"
)

// LoadGroundTruth reads the hand-authored reference table. The CSV must carry
// id, name and latest_yoy_pct columns; an empty latest_yoy_pct cell means the
// value is missing.
func LoadGroundTruth(path string) ([]store.GroundTruthRecord, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ground truth %s: %w", path, err)
	}
	defer in.Close()

	r := csv.NewReader(in)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ground truth %s is empty", path)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"id", "name", "latest_yoy_pct"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("ground truth %s is missing column %q", path, required)
		}
	}

	records := make([]store.GroundTruthRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record := store.GroundTruthRecord{
			ID:   strings.TrimSpace(row[columns["id"]]),
			Name: strings.TrimSpace(row[columns["name"]]),
		}
		if cell := strings.TrimSpace(row[columns["latest_yoy_pct"]]); cell != "" {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse latest_yoy_pct on row %d: %w", i+2, err)
			}
			record.LatestYoYPct = &value
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadAgentResponses reads one agent response file in JSON-lines format,
// attaching the given document id to every record.
func LoadAgentResponses(path, id string) ([]store.AgentResponseRecord, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open agent responses %s: %w", path, err)
	}
	defer in.Close()

	var records []store.AgentResponseRecord
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var record store.AgentResponseRecord
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return nil, fmt.Errorf("failed to parse agent response %s line %d: %w", path, line, err)
		}
		record.ID = id
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read agent responses %s: %w", path, err)
	}
	return records, nil
}

// LoadAgentResponsesDir reads every *.json and *.jsonl file in dir as one
// document's responses, using the file stem as the document id. Files are
// processed in name order.
func LoadAgentResponsesDir(dir string) ([]store.AgentResponseRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".json", ".jsonl":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	var all []store.AgentResponseRecord
	for _, path := range paths {
		base := filepath.Base(path)
		id := strings.TrimSuffix(base, filepath.Ext(base))
		records, err := LoadAgentResponses(path, id)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
