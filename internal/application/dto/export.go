package dto

// CurrentExportVersion is written into every new export document.
//
// Version history:
//
//	1: meals, symptoms, medications, other entries, blood pressure, cholesterol, weight
//	2: + spO2Entries
//	3: + bloodGlucoseEntries, medicationSets, bowelMovements
const CurrentExportVersion = 3

// ExportData is the versioned backup envelope. Records carry no ids so they can
// be inserted into any store. Every list may be missing in older documents.
type ExportData struct {
	Version              int                   `json:"version"`
	ExportedAt           int64                 `json:"exportedAt"`
	Meals                []MealExport          `json:"meals"`
	Symptoms             []SymptomExport       `json:"symptoms"`
	Medications          []MedicationExport    `json:"medications"`
	OtherEntries         []OtherEntryExport    `json:"otherEntries"`
	BloodPressureEntries []BloodPressureExport `json:"bloodPressureEntries"`
	CholesterolEntries   []CholesterolExport   `json:"cholesterolEntries"`
	WeightEntries        []WeightExport        `json:"weightEntries"`
	SpO2Entries          []SpO2Export          `json:"spO2Entries"`
	BloodGlucoseEntries  []BloodGlucoseExport  `json:"bloodGlucoseEntries"`
	MedicationSets       []MedicationSetExport `json:"medicationSets"`
	BowelMovements       []BowelMovementExport `json:"bowelMovements"`
}

// MealExport is a meal with its foods and tag names inlined.
type MealExport struct {
	Timestamp int64        `json:"timestamp"`
	MealType  string       `json:"mealType"`
	Notes     string       `json:"notes"`
	Foods     []FoodExport `json:"foods"`
	Tags      []string     `json:"tags"`
}

type FoodExport struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

type SymptomExport struct {
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name"`
	Severity  int    `json:"severity"`
	Notes     string `json:"notes"`
}

type MedicationExport struct {
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Notes     string `json:"notes"`
}

type OtherEntryExport struct {
	Timestamp   int64    `json:"timestamp"`
	EntryType   string   `json:"entryType"`
	Description string   `json:"description"`
	Value       *float64 `json:"value,omitempty"`
	Notes       string   `json:"notes"`
}

type BloodPressureExport struct {
	Timestamp int64  `json:"timestamp"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Pulse     *int   `json:"pulse,omitempty"`
	Notes     string `json:"notes"`
}

type CholesterolExport struct {
	Timestamp     int64    `json:"timestamp"`
	Total         *float64 `json:"total,omitempty"`
	LDL           *float64 `json:"ldl,omitempty"`
	HDL           *float64 `json:"hdl,omitempty"`
	Triglycerides *float64 `json:"triglycerides,omitempty"`
	Notes         string   `json:"notes"`
}

type WeightExport struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Notes     string  `json:"notes"`
}

type SpO2Export struct {
	Timestamp  int64  `json:"timestamp"`
	Percentage int    `json:"percentage"`
	Pulse      *int   `json:"pulse,omitempty"`
	Notes      string `json:"notes"`
}

type BloodGlucoseExport struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Notes     string  `json:"notes"`
}

// MedicationSetExport is a set with its items inlined. Reminders and logs are
// not part of the backup.
type MedicationSetExport struct {
	Name      string                    `json:"name"`
	CreatedAt int64                     `json:"createdAt"`
	Items     []MedicationSetItemExport `json:"items"`
}

type MedicationSetItemExport struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

type BowelMovementExport struct {
	Timestamp   int64  `json:"timestamp"`
	BristolType int    `json:"bristolType"`
	Notes       string `json:"notes"`
}
