package repository

import "healthlog/internal/domain/entity"

// Store groups every repository so callers that touch all categories
// (backup, HTTP wiring) can take a single dependency.
type Store struct {
	Meals          EntryRepository[entity.Meal]
	Symptoms       EntryRepository[entity.Symptom]
	BowelMovements EntryRepository[entity.BowelMovement]
	Medications    EntryRepository[entity.Medication]
	OtherEntries   EntryRepository[entity.OtherEntry]
	BloodPressure  EntryRepository[entity.BloodPressure]
	Cholesterol    EntryRepository[entity.Cholesterol]
	Weight         EntryRepository[entity.Weight]
	SpO2           EntryRepository[entity.SpO2]
	BloodGlucose   EntryRepository[entity.BloodGlucose]
	MedicationSets MedicationSetRepository
	SetLogs        MedicationSetLogRepository
	Reminders      ReminderRepository
}
