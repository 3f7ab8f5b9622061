package adapters

import (
	"github.com/de-tools/materiality-evals/pkg/models/domain"
	"github.com/de-tools/materiality-evals/pkg/models/store"
)

// MapReportDomainToStore flattens a report into one record per
// (material change, reason) pair, tagging every record with the document id.
// A change without reasons contributes no records.
func MapReportDomainToStore(r domain.MaterialChangesReport, id string) []store.ReasonRecord {
	records := make([]store.ReasonRecord, 0, len(r.MaterialChanges))
	for _, change := range r.MaterialChanges {
		for _, reason := range change.ReasonsForChange {
			records = append(records, store.ReasonRecord{
				MaterialChange:      change.MaterialChange,
				Reason:              reason.Reason,
				SupportingText:      reason.SupportingText,
				ReferenceFileName:   reason.Reference.FileName,
				ReferencePageNumber: reason.Reference.PageNumber,
				ID:                  id,
			})
		}
	}
	return records
}
