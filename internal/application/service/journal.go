package service

import (
	"fmt"
	"strings"
	"time"

	"healthlog/internal/domain/constant"
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"
)

// Journal bundles the entry services of every journal category.
type Journal struct {
	Meals          *EntryService[entity.Meal]
	Symptoms       *EntryService[entity.Symptom]
	BowelMovements *EntryService[entity.BowelMovement]
	Medications    *EntryService[entity.Medication]
	OtherEntries   *EntryService[entity.OtherEntry]
	BloodPressure  *EntryService[entity.BloodPressure]
	Cholesterol    *EntryService[entity.Cholesterol]
	Weight         *EntryService[entity.Weight]
	SpO2           *EntryService[entity.SpO2]
	BloodGlucose   *EntryService[entity.BloodGlucose]
}

// NewJournal creates the entry services for every category in store. Entries
// without a timestamp are stamped with now().
func NewJournal(store *repository.Store, now func() time.Time, log logger.Logger) *Journal {
	if now == nil {
		now = time.Now
	}
	stamp := func(ts *time.Time) {
		if ts.IsZero() {
			*ts = now()
		}
		*ts = ts.UTC()
	}

	return &Journal{
		Meals: NewEntryService(store.Meals, "meal", log).WithNormalizer(func(m *entity.Meal) error {
			stamp(&m.Timestamp)
			m.MealType = constant.ParseMealType(string(m.MealType))
			for i := range m.Foods {
				m.Foods[i].ID = 0
				m.Foods[i].MealID = m.ID
			}
			for i := range m.Tags {
				m.Tags[i].ID = 0
				m.Tags[i].MealID = m.ID
			}
			return nil
		}),
		Symptoms: NewEntryService(store.Symptoms, "symptom", log).WithNormalizer(func(s *entity.Symptom) error {
			stamp(&s.Timestamp)
			if strings.TrimSpace(s.Name) == "" {
				return fmt.Errorf("%w: symptom name is required", appErrors.ErrInvalidEntry)
			}
			if s.Severity < 1 || s.Severity > 10 {
				return fmt.Errorf("%w: severity must be 1-10, got %d", appErrors.ErrInvalidEntry, s.Severity)
			}
			return nil
		}),
		BowelMovements: NewEntryService(store.BowelMovements, "bowel movement", log).WithNormalizer(func(b *entity.BowelMovement) error {
			stamp(&b.Timestamp)
			if !b.BristolType.Valid() {
				return fmt.Errorf("%w: bristol type must be 1-7, got %d", appErrors.ErrInvalidEntry, b.BristolType)
			}
			return nil
		}),
		Medications: NewEntryService(store.Medications, "medication", log).WithNormalizer(func(m *entity.Medication) error {
			stamp(&m.Timestamp)
			if strings.TrimSpace(m.Name) == "" {
				return fmt.Errorf("%w: medication name is required", appErrors.ErrInvalidEntry)
			}
			return nil
		}),
		OtherEntries: NewEntryService(store.OtherEntries, "other entry", log).WithNormalizer(func(o *entity.OtherEntry) error {
			stamp(&o.Timestamp)
			o.EntryType = constant.ParseOtherEntryType(string(o.EntryType))
			return nil
		}),
		BloodPressure: NewEntryService(store.BloodPressure, "blood pressure", log).WithNormalizer(func(b *entity.BloodPressure) error {
			stamp(&b.Timestamp)
			if b.Systolic <= 0 || b.Diastolic <= 0 {
				return fmt.Errorf("%w: systolic and diastolic are required", appErrors.ErrInvalidEntry)
			}
			return nil
		}),
		Cholesterol: NewEntryService(store.Cholesterol, "cholesterol", log).WithNormalizer(func(c *entity.Cholesterol) error {
			stamp(&c.Timestamp)
			return nil
		}),
		Weight: NewEntryService(store.Weight, "weight", log).WithNormalizer(func(w *entity.Weight) error {
			stamp(&w.Timestamp)
			w.Unit = constant.ParseWeightUnit(string(w.Unit))
			if w.Value <= 0 {
				return fmt.Errorf("%w: weight must be positive", appErrors.ErrInvalidEntry)
			}
			return nil
		}),
		SpO2: NewEntryService(store.SpO2, "spo2", log).WithNormalizer(func(s *entity.SpO2) error {
			stamp(&s.Timestamp)
			if s.Percentage < 0 || s.Percentage > 100 {
				return fmt.Errorf("%w: percentage must be 0-100, got %d", appErrors.ErrInvalidEntry, s.Percentage)
			}
			return nil
		}),
		BloodGlucose: NewEntryService(store.BloodGlucose, "blood glucose", log).WithNormalizer(func(g *entity.BloodGlucose) error {
			stamp(&g.Timestamp)
			g.Unit = constant.ParseGlucoseUnit(string(g.Unit))
			return nil
		}),
	}
}
