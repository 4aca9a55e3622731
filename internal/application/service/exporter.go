package service

import (
	"encoding/json"
	"fmt"
	"time"

	"healthlog/internal/application/dto"
	"healthlog/internal/domain/entity"
)

// Dataset is an in-memory snapshot of every journal category. Nil slices are
// exported as empty lists.
type Dataset struct {
	Meals          []entity.Meal
	Symptoms       []entity.Symptom
	Medications    []entity.Medication
	OtherEntries   []entity.OtherEntry
	BloodPressure  []entity.BloodPressure
	Cholesterol    []entity.Cholesterol
	Weight         []entity.Weight
	SpO2           []entity.SpO2
	BloodGlucose   []entity.BloodGlucose
	MedicationSets []entity.MedicationSet
	BowelMovements []entity.BowelMovement
}

// Len is the number of records in the snapshot.
func (d Dataset) Len() int {
	return len(d.Meals) + len(d.Symptoms) + len(d.Medications) + len(d.OtherEntries) +
		len(d.BloodPressure) + len(d.Cholesterol) + len(d.Weight) + len(d.SpO2) +
		len(d.BloodGlucose) + len(d.MedicationSets) + len(d.BowelMovements)
}

// mapSlice converts every element and never returns nil.
func mapSlice[S, D any](in []S, fn func(*S) D) []D {
	out := make([]D, 0, len(in))
	for i := range in {
		out = append(out, fn(&in[i]))
	}
	return out
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// BuildExportData flattens ds into the current export schema.
func BuildExportData(ds Dataset, exportedAt time.Time) dto.ExportData {
	return dto.ExportData{
		Version:    dto.CurrentExportVersion,
		ExportedAt: millis(exportedAt),
		Meals: mapSlice(ds.Meals, func(m *entity.Meal) dto.MealExport {
			return dto.MealExport{
				Timestamp: millis(m.Timestamp),
				MealType:  string(m.MealType),
				Notes:     m.Notes,
				Foods: mapSlice(m.Foods, func(f *entity.MealFood) dto.FoodExport {
					return dto.FoodExport{Name: f.Name, Quantity: f.Quantity}
				}),
				Tags: mapSlice(m.Tags, func(t *entity.MealTag) string { return t.Name }),
			}
		}),
		Symptoms: mapSlice(ds.Symptoms, func(s *entity.Symptom) dto.SymptomExport {
			return dto.SymptomExport{Timestamp: millis(s.Timestamp), Name: s.Name, Severity: s.Severity, Notes: s.Notes}
		}),
		Medications: mapSlice(ds.Medications, func(m *entity.Medication) dto.MedicationExport {
			return dto.MedicationExport{Timestamp: millis(m.Timestamp), Name: m.Name, Dosage: m.Dosage, Notes: m.Notes}
		}),
		OtherEntries: mapSlice(ds.OtherEntries, func(o *entity.OtherEntry) dto.OtherEntryExport {
			return dto.OtherEntryExport{
				Timestamp:   millis(o.Timestamp),
				EntryType:   string(o.EntryType),
				Description: o.Description,
				Value:       o.Value,
				Notes:       o.Notes,
			}
		}),
		BloodPressureEntries: mapSlice(ds.BloodPressure, func(b *entity.BloodPressure) dto.BloodPressureExport {
			return dto.BloodPressureExport{
				Timestamp: millis(b.Timestamp),
				Systolic:  b.Systolic,
				Diastolic: b.Diastolic,
				Pulse:     b.Pulse,
				Notes:     b.Notes,
			}
		}),
		CholesterolEntries: mapSlice(ds.Cholesterol, func(c *entity.Cholesterol) dto.CholesterolExport {
			return dto.CholesterolExport{
				Timestamp:     millis(c.Timestamp),
				Total:         c.Total,
				LDL:           c.LDL,
				HDL:           c.HDL,
				Triglycerides: c.Triglycerides,
				Notes:         c.Notes,
			}
		}),
		WeightEntries: mapSlice(ds.Weight, func(w *entity.Weight) dto.WeightExport {
			return dto.WeightExport{Timestamp: millis(w.Timestamp), Value: w.Value, Unit: string(w.Unit), Notes: w.Notes}
		}),
		SpO2Entries: mapSlice(ds.SpO2, func(s *entity.SpO2) dto.SpO2Export {
			return dto.SpO2Export{Timestamp: millis(s.Timestamp), Percentage: s.Percentage, Pulse: s.Pulse, Notes: s.Notes}
		}),
		BloodGlucoseEntries: mapSlice(ds.BloodGlucose, func(g *entity.BloodGlucose) dto.BloodGlucoseExport {
			return dto.BloodGlucoseExport{Timestamp: millis(g.Timestamp), Value: g.Value, Unit: string(g.Unit), Notes: g.Notes}
		}),
		MedicationSets: mapSlice(ds.MedicationSets, func(s *entity.MedicationSet) dto.MedicationSetExport {
			return dto.MedicationSetExport{
				Name:      s.Name,
				CreatedAt: millis(s.CreatedAt),
				Items: mapSlice(s.Items, func(i *entity.MedicationSetItem) dto.MedicationSetItemExport {
					return dto.MedicationSetItemExport{Name: i.Name, Dosage: i.Dosage}
				}),
			}
		}),
		BowelMovements: mapSlice(ds.BowelMovements, func(b *entity.BowelMovement) dto.BowelMovementExport {
			return dto.BowelMovementExport{Timestamp: millis(b.Timestamp), BristolType: int(b.BristolType), Notes: b.Notes}
		}),
	}
}

// Export renders ds as an indented export document.
func Export(ds Dataset, exportedAt time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(BuildExportData(ds, exportedAt), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}
