package entity

import (
	"time"

	"healthlog/internal/domain/constant"
)

// Symptom is a logged symptom with a 1-10 severity.
type Symptom struct {
	Base
	Timestamp time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	Name      string    `gorm:"column:name" json:"name"`
	Severity  int       `gorm:"column:severity" json:"severity"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes"`
}

func (Symptom) TableName() string { return "symptoms" }

// BowelMovement is classified on the Bristol stool scale.
type BowelMovement struct {
	Base
	Timestamp   time.Time            `gorm:"column:timestamp;index" json:"timestamp"`
	BristolType constant.BristolType `gorm:"column:bristol_type" json:"bristolType"`
	Notes       string               `gorm:"column:notes;type:text" json:"notes"`
}

func (BowelMovement) TableName() string { return "bowel_movements" }

// Medication is a single dose taken.
type Medication struct {
	Base
	Timestamp time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	Name      string    `gorm:"column:name" json:"name"`
	Dosage    string    `gorm:"column:dosage" json:"dosage"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes"`
}

func (Medication) TableName() string { return "medications" }

// OtherEntry covers sleep, exercise, stress, mood and anything else.
type OtherEntry struct {
	Base
	Timestamp   time.Time               `gorm:"column:timestamp;index" json:"timestamp"`
	EntryType   constant.OtherEntryType `gorm:"column:entry_type" json:"entryType"`
	Description string                  `gorm:"column:description" json:"description"`
	Value       *float64                `gorm:"column:value" json:"value,omitempty"`
	Notes       string                  `gorm:"column:notes;type:text" json:"notes"`
}

func (OtherEntry) TableName() string { return "other_entries" }

// BloodPressure is a systolic/diastolic reading in mmHg.
type BloodPressure struct {
	Base
	Timestamp time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	Systolic  int       `gorm:"column:systolic" json:"systolic"`
	Diastolic int       `gorm:"column:diastolic" json:"diastolic"`
	Pulse     *int      `gorm:"column:pulse" json:"pulse,omitempty"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes"`
}

func (BloodPressure) TableName() string { return "blood_pressure_entries" }

// Cholesterol is a lipid panel; every sub-value is optional.
type Cholesterol struct {
	Base
	Timestamp     time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	Total         *float64  `gorm:"column:total" json:"total,omitempty"`
	LDL           *float64  `gorm:"column:ldl" json:"ldl,omitempty"`
	HDL           *float64  `gorm:"column:hdl" json:"hdl,omitempty"`
	Triglycerides *float64  `gorm:"column:triglycerides" json:"triglycerides,omitempty"`
	Notes         string    `gorm:"column:notes;type:text" json:"notes"`
}

func (Cholesterol) TableName() string { return "cholesterol_entries" }

// Weight is a body weight reading.
type Weight struct {
	Base
	Timestamp time.Time           `gorm:"column:timestamp;index" json:"timestamp"`
	Value     float64             `gorm:"column:value" json:"value"`
	Unit      constant.WeightUnit `gorm:"column:unit" json:"unit"`
	Notes     string              `gorm:"column:notes;type:text" json:"notes"`
}

func (Weight) TableName() string { return "weight_entries" }

// SpO2 is an oxygen saturation reading in percent.
type SpO2 struct {
	Base
	Timestamp  time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	Percentage int       `gorm:"column:percentage" json:"percentage"`
	Pulse      *int      `gorm:"column:pulse" json:"pulse,omitempty"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes"`
}

func (SpO2) TableName() string { return "spo2_entries" }

// BloodGlucose is a glucose reading.
type BloodGlucose struct {
	Base
	Timestamp time.Time            `gorm:"column:timestamp;index" json:"timestamp"`
	Value     float64              `gorm:"column:value" json:"value"`
	Unit      constant.GlucoseUnit `gorm:"column:unit" json:"unit"`
	Notes     string               `gorm:"column:notes;type:text" json:"notes"`
}

func (BloodGlucose) TableName() string { return "blood_glucose_entries" }
