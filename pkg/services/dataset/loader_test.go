package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGroundTruth(t *testing.T) {
	content := `id,name,latest_yoy_pct
tesco_ar_25,EBITDA,4.0
tesco_ar_25,Net Profit,10.9
tesco_ar_25,TFD/EBITDA (x),
`
	path := writeFile(t, t.TempDir(), "ground_truth.csv", content)

	records, err := LoadGroundTruth(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "tesco_ar_25", records[0].ID)
	assert.Equal(t, "EBITDA", records[0].Name)
	require.NotNil(t, records[0].LatestYoYPct)
	assert.Equal(t, 4.0, *records[0].LatestYoYPct)

	// Empty cell means the value is missing.
	assert.Nil(t, records[2].LatestYoYPct)
}

func TestLoadGroundTruth_MissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ground_truth.csv", "id,name\n1,EBITDA\n")

	_, err := LoadGroundTruth(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latest_yoy_pct")
}

func TestLoadGroundTruth_BadNumber(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ground_truth.csv", "id,name,latest_yoy_pct\n1,EBITDA,four\n")

	_, err := LoadGroundTruth(path)
	require.Error(t, err)
}

func TestLoadAgentResponses(t *testing.T) {
	content := `{"name": "EBITDA", "latest_yoy_pct": 4.0}
{"name": "Net Profit", "latest_yoy_pct": 10.9}
{"name": "TFD/EBITDA (x)", "latest_yoy_pct": null}
`
	path := writeFile(t, t.TempDir(), "responses.jsonl", content)

	records, err := LoadAgentResponses(path, "tesco_ar_25")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "tesco_ar_25", records[0].ID)
	assert.Equal(t, "EBITDA", records[0].Name)
	assert.Equal(t, 4.0, *records[0].LatestYoYPct)
	assert.Nil(t, records[2].LatestYoYPct)
}

func TestLoadAgentResponses_MalformedLine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "responses.jsonl", "{\"name\": \"EBITDA\"\n")

	_, err := LoadAgentResponses(path, "tesco_ar_25")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadAgentResponsesDir_UsesFileStemAsID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tesco_ar_25.jsonl", `{"name": "EBITDA", "latest_yoy_pct": 4.0}`+"\n")
	writeFile(t, dir, "sainsbury_ar_25.json", `{"name": "EBITDA", "latest_yoy_pct": 1.5}`+"\n")
	writeFile(t, dir, "notes.txt", "ignore me")

	records, err := LoadAgentResponsesDir(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Files are read in name order.
	assert.Equal(t, "sainsbury_ar_25", records[0].ID)
	assert.Equal(t, "tesco_ar_25", records[1].ID)
}
