package store

// ReasonRecord is the flattened CSV shape of one reason within a material
// change: one row per (material change, reason) pair.
type ReasonRecord struct {
	MaterialChange      string
	Reason              string
	SupportingText      string
	ReferenceFileName   string
	ReferencePageNumber int
	ID                  string
}

// GroundTruthRecord is one row of the hand-authored reference dataset.
// A nil LatestYoYPct means the metric is not expected to appear.
type GroundTruthRecord struct {
	ID           string
	Name         string
	LatestYoYPct *float64
}

// AgentResponseRecord is one JSON-lines entry of an agent response file.
// The document id is not part of the line; it is attached per file.
type AgentResponseRecord struct {
	ID           string
	Name         string   `json:"name"`
	LatestYoYPct *float64 `json:"latest_yoy_pct"`
}
