package dto

// SaveMedicationSetRequest is the DTO for creating or updating a medication set.
// Items replace whatever the set held before.
type SaveMedicationSetRequest struct {
	Name  string                    `json:"name"`
	Items []MedicationSetItemExport `json:"items"`
}

// LogMedicationSetRequest is the DTO for logging a set. A zero timestamp means now.
type LogMedicationSetRequest struct {
	Timestamp int64 `json:"timestamp"`
}
