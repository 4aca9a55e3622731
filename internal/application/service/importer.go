package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"healthlog/internal/application/dto"
	"healthlog/internal/domain/constant"
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	"healthlog/internal/pkg/logger"
	"healthlog/internal/pkg/metrics"
)

const (
	// InvalidDataFormatMessage is the reason given for unparseable documents.
	InvalidDataFormatMessage = "Invalid data format"
	importFailedPrefix       = "Failed to import: "
)

// ImportCounts is the number of records imported per category.
type ImportCounts struct {
	Meals          int `json:"meals"`
	Symptoms       int `json:"symptoms"`
	Medications    int `json:"medications"`
	OtherEntries   int `json:"otherEntries"`
	BloodPressure  int `json:"bloodPressure"`
	Cholesterol    int `json:"cholesterol"`
	Weight         int `json:"weight"`
	SpO2           int `json:"spO2"`
	BloodGlucose   int `json:"bloodGlucose"`
	MedicationSets int `json:"medicationSets"`
	BowelMovements int `json:"bowelMovements"`
}

// Total is the sum of every category.
func (c ImportCounts) Total() int {
	return c.Meals + c.Symptoms + c.Medications + c.OtherEntries + c.BloodPressure +
		c.Cholesterol + c.Weight + c.SpO2 + c.BloodGlucose + c.MedicationSets + c.BowelMovements
}

// ImportResult is either ImportSuccess or ImportError.
type ImportResult interface {
	OK() bool
	Message() string
	isImportResult()
}

// ImportSuccess reports a fully applied document.
type ImportSuccess struct {
	Counts        ImportCounts `json:"counts"`
	TotalImported int          `json:"totalImported"`
}

func (ImportSuccess) OK() bool { return true }
func (s ImportSuccess) Message() string {
	return fmt.Sprintf("Imported %d records", s.TotalImported)
}
func (ImportSuccess) isImportResult() {}

// ImportError reports a rejected or partially applied document.
type ImportError struct {
	Reason string `json:"reason"`
}

func (ImportError) OK() bool          { return false }
func (e ImportError) Message() string { return e.Reason }
func (ImportError) isImportResult()   {}

// DataImporter writes export documents into a store.
type DataImporter struct {
	store   *repository.Store
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewDataImporter creates an importer writing through store.
func NewDataImporter(store *repository.Store, log logger.Logger, m *metrics.Metrics) *DataImporter {
	return &DataImporter{store: store, log: log, metrics: m}
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Import parses data and inserts every record in category order. Records
// written before a failure stay in the store.
func (im *DataImporter) Import(ctx context.Context, data []byte) ImportResult {
	var doc *dto.ExportData
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		if err != nil {
			im.log.Warn(fmt.Sprintf("Rejected import document: %v", err))
		} else {
			im.log.Warn("Rejected import document: null envelope")
		}
		im.metrics.Imports.WithLabelValues("invalid").Inc()
		return ImportError{Reason: InvalidDataFormatMessage}
	}

	counts, err := im.apply(ctx, doc)
	im.recordCounts(counts)
	if err != nil {
		im.log.Error(fmt.Sprintf("Import aborted after %d records", counts.Total()), err)
		im.metrics.Imports.WithLabelValues("failed").Inc()
		return ImportError{Reason: importFailedPrefix + err.Error()}
	}

	im.metrics.Imports.WithLabelValues("success").Inc()
	im.log.Info(fmt.Sprintf("Imported %d records from version %d document", counts.Total(), doc.Version))
	return ImportSuccess{Counts: counts, TotalImported: counts.Total()}
}

func (im *DataImporter) recordCounts(c ImportCounts) {
	for category, n := range map[string]int{
		"meals":           c.Meals,
		"symptoms":        c.Symptoms,
		"medications":     c.Medications,
		"other_entries":   c.OtherEntries,
		"blood_pressure":  c.BloodPressure,
		"cholesterol":     c.Cholesterol,
		"weight":          c.Weight,
		"spo2":            c.SpO2,
		"blood_glucose":   c.BloodGlucose,
		"medication_sets": c.MedicationSets,
		"bowel_movements": c.BowelMovements,
	} {
		if n > 0 {
			im.metrics.ImportedRecords.WithLabelValues(category).Add(float64(n))
		}
	}
}

// importEach inserts every record of one category, counting successes.
func importEach[S, T any](ctx context.Context, in []S, count *int, convert func(*S) *T, create func(context.Context, *T) error) error {
	for i := range in {
		if err := create(ctx, convert(&in[i])); err != nil {
			return err
		}
		*count++
	}
	return nil
}

func (im *DataImporter) apply(ctx context.Context, doc *dto.ExportData) (counts ImportCounts, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	s := im.store
	steps := []func() error{
		func() error {
			return importEach(ctx, doc.Meals, &counts.Meals, func(m *dto.MealExport) *entity.Meal {
				meal := &entity.Meal{
					Timestamp: fromMillis(m.Timestamp),
					MealType:  constant.ParseMealType(m.MealType),
					Notes:     m.Notes,
				}
				for _, f := range m.Foods {
					meal.Foods = append(meal.Foods, entity.MealFood{Name: f.Name, Quantity: f.Quantity})
				}
				for _, t := range m.Tags {
					meal.Tags = append(meal.Tags, entity.MealTag{Name: t})
				}
				return meal
			}, s.Meals.Create)
		},
		func() error {
			return importEach(ctx, doc.Symptoms, &counts.Symptoms, func(e *dto.SymptomExport) *entity.Symptom {
				return &entity.Symptom{Timestamp: fromMillis(e.Timestamp), Name: e.Name, Severity: e.Severity, Notes: e.Notes}
			}, s.Symptoms.Create)
		},
		func() error {
			return importEach(ctx, doc.Medications, &counts.Medications, func(e *dto.MedicationExport) *entity.Medication {
				return &entity.Medication{Timestamp: fromMillis(e.Timestamp), Name: e.Name, Dosage: e.Dosage, Notes: e.Notes}
			}, s.Medications.Create)
		},
		func() error {
			return importEach(ctx, doc.OtherEntries, &counts.OtherEntries, func(e *dto.OtherEntryExport) *entity.OtherEntry {
				return &entity.OtherEntry{
					Timestamp:   fromMillis(e.Timestamp),
					EntryType:   constant.ParseOtherEntryType(e.EntryType),
					Description: e.Description,
					Value:       e.Value,
					Notes:       e.Notes,
				}
			}, s.OtherEntries.Create)
		},
		func() error {
			return importEach(ctx, doc.BloodPressureEntries, &counts.BloodPressure, func(e *dto.BloodPressureExport) *entity.BloodPressure {
				return &entity.BloodPressure{
					Timestamp: fromMillis(e.Timestamp),
					Systolic:  e.Systolic,
					Diastolic: e.Diastolic,
					Pulse:     e.Pulse,
					Notes:     e.Notes,
				}
			}, s.BloodPressure.Create)
		},
		func() error {
			return importEach(ctx, doc.CholesterolEntries, &counts.Cholesterol, func(e *dto.CholesterolExport) *entity.Cholesterol {
				return &entity.Cholesterol{
					Timestamp:     fromMillis(e.Timestamp),
					Total:         e.Total,
					LDL:           e.LDL,
					HDL:           e.HDL,
					Triglycerides: e.Triglycerides,
					Notes:         e.Notes,
				}
			}, s.Cholesterol.Create)
		},
		func() error {
			return importEach(ctx, doc.WeightEntries, &counts.Weight, func(e *dto.WeightExport) *entity.Weight {
				return &entity.Weight{
					Timestamp: fromMillis(e.Timestamp),
					Value:     e.Value,
					Unit:      constant.ParseWeightUnit(e.Unit),
					Notes:     e.Notes,
				}
			}, s.Weight.Create)
		},
		func() error {
			return importEach(ctx, doc.SpO2Entries, &counts.SpO2, func(e *dto.SpO2Export) *entity.SpO2 {
				return &entity.SpO2{Timestamp: fromMillis(e.Timestamp), Percentage: e.Percentage, Pulse: e.Pulse, Notes: e.Notes}
			}, s.SpO2.Create)
		},
		func() error {
			return importEach(ctx, doc.BloodGlucoseEntries, &counts.BloodGlucose, func(e *dto.BloodGlucoseExport) *entity.BloodGlucose {
				return &entity.BloodGlucose{
					Timestamp: fromMillis(e.Timestamp),
					Value:     e.Value,
					Unit:      constant.ParseGlucoseUnit(e.Unit),
					Notes:     e.Notes,
				}
			}, s.BloodGlucose.Create)
		},
		func() error {
			return importEach(ctx, doc.MedicationSets, &counts.MedicationSets, func(e *dto.MedicationSetExport) *entity.MedicationSet {
				set := &entity.MedicationSet{Name: e.Name, CreatedAt: fromMillis(e.CreatedAt)}
				for _, item := range e.Items {
					set.Items = append(set.Items, entity.MedicationSetItem{Name: item.Name, Dosage: item.Dosage})
				}
				return set
			}, s.MedicationSets.Create)
		},
		func() error {
			return importEach(ctx, doc.BowelMovements, &counts.BowelMovements, func(e *dto.BowelMovementExport) *entity.BowelMovement {
				return &entity.BowelMovement{
					Timestamp:   fromMillis(e.Timestamp),
					BristolType: constant.ParseBristolType(e.BristolType),
					Notes:       e.Notes,
				}
			}, s.BowelMovements.Create)
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return counts, err
		}
	}
	return counts, nil
}
