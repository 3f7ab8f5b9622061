package domain

// Reference points at the exact location in a source document that backs a
// finding.
type Reference struct {
	FileName   string `json:"file_name"`
	PageNumber int    `json:"page_number"`
}

// ReasonForChange is a single explanation for a material change, together with
// the quoted text that supports it.
type ReasonForChange struct {
	Reason         string    `json:"reason"`
	SupportingText string    `json:"supporting_text"`
	Reference      Reference `json:"reference"`
}

// MaterialChange describes one financial metric whose value shifted enough to
// warrant explanation in the report.
type MaterialChange struct {
	MaterialChange   string            `json:"material_change"`
	ReasonsForChange []ReasonForChange `json:"reasons_for_change"`
}

// MaterialChangesReport is the unit of output for one source document: the
// ordered collection of material changes extracted from it.
type MaterialChangesReport struct {
	MaterialChanges []MaterialChange `json:"material_changes"`
}
