package sqlite

import (
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"

	"gorm.io/gorm"
)

// NewStore builds every repository on top of one database handle.
func NewStore(db *gorm.DB) *repository.Store {
	medications := NewEntryRepository[entity.Medication](db, "medication")
	return &repository.Store{
		Meals:          NewMealRepository(db),
		Symptoms:       NewEntryRepository[entity.Symptom](db, "symptom"),
		BowelMovements: NewEntryRepository[entity.BowelMovement](db, "bowel movement"),
		Medications:    medications,
		OtherEntries:   NewEntryRepository[entity.OtherEntry](db, "other entry"),
		BloodPressure:  NewEntryRepository[entity.BloodPressure](db, "blood pressure entry"),
		Cholesterol:    NewEntryRepository[entity.Cholesterol](db, "cholesterol entry"),
		Weight:         NewEntryRepository[entity.Weight](db, "weight entry"),
		SpO2:           NewEntryRepository[entity.SpO2](db, "SpO2 entry"),
		BloodGlucose:   NewEntryRepository[entity.BloodGlucose](db, "blood glucose entry"),
		MedicationSets: NewMedicationSetRepository(db, medications),
		SetLogs:        NewMedicationSetLogRepository(db),
		Reminders:      NewReminderRepository(db),
	}
}
