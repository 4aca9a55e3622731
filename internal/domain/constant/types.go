package constant

import "strings"

// MealType classifies a meal entry.
type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
	MealTypeSnack     MealType = "SNACK"
)

// ParseMealType returns SNACK for anything it does not recognise.
func ParseMealType(s string) MealType {
	switch t := MealType(strings.ToUpper(strings.TrimSpace(s))); t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return t
	default:
		return MealTypeSnack
	}
}

// OtherEntryType classifies a free-form entry.
type OtherEntryType string

const (
	OtherEntrySleep    OtherEntryType = "SLEEP"
	OtherEntryExercise OtherEntryType = "EXERCISE"
	OtherEntryStress   OtherEntryType = "STRESS"
	OtherEntryMood     OtherEntryType = "MOOD"
	OtherEntryOther    OtherEntryType = "OTHER"
)

// ParseOtherEntryType returns OTHER for anything it does not recognise.
func ParseOtherEntryType(s string) OtherEntryType {
	switch t := OtherEntryType(strings.ToUpper(strings.TrimSpace(s))); t {
	case OtherEntrySleep, OtherEntryExercise, OtherEntryStress, OtherEntryMood, OtherEntryOther:
		return t
	default:
		return OtherEntryOther
	}
}

// WeightUnit is the unit a weight was recorded in.
type WeightUnit string

const (
	WeightUnitLB WeightUnit = "LB"
	WeightUnitKG WeightUnit = "KG"
)

// ParseWeightUnit returns LB for anything it does not recognise.
func ParseWeightUnit(s string) WeightUnit {
	switch u := WeightUnit(strings.ToUpper(strings.TrimSpace(s))); u {
	case WeightUnitLB, WeightUnitKG:
		return u
	default:
		return WeightUnitLB
	}
}

// GlucoseUnit is the unit a blood glucose reading was recorded in.
type GlucoseUnit string

const (
	GlucoseUnitMgDL  GlucoseUnit = "MG_DL"
	GlucoseUnitMmolL GlucoseUnit = "MMOL_L"
)

// ParseGlucoseUnit returns MG_DL for anything it does not recognise.
func ParseGlucoseUnit(s string) GlucoseUnit {
	switch u := GlucoseUnit(strings.ToUpper(strings.TrimSpace(s))); u {
	case GlucoseUnitMgDL, GlucoseUnitMmolL:
		return u
	default:
		return GlucoseUnitMgDL
	}
}

// BristolType is a point on the Bristol stool scale (1-7).
type BristolType int

const (
	BristolSeparateHardLumps BristolType = iota + 1
	BristolLumpySausage
	BristolCrackedSausage
	BristolSmoothSnake
	BristolSoftBlobs
	BristolMushy
	BristolWatery
)

var bristolDescriptions = map[BristolType]string{
	BristolSeparateHardLumps: "Separate hard lumps",
	BristolLumpySausage:      "Lumpy, sausage-shaped",
	BristolCrackedSausage:    "Sausage with surface cracks",
	BristolSmoothSnake:       "Smooth, soft sausage or snake",
	BristolSoftBlobs:         "Soft blobs with clear-cut edges",
	BristolMushy:             "Mushy with ragged edges",
	BristolWatery:            "Watery, no solid pieces",
}

// ParseBristolType clamps unknown values to type 4, the normal reference point.
func ParseBristolType(v int) BristolType {
	t := BristolType(v)
	if _, ok := bristolDescriptions[t]; !ok {
		return BristolSmoothSnake
	}
	return t
}

// Valid reports whether t is one of the seven scale points.
func (t BristolType) Valid() bool {
	_, ok := bristolDescriptions[t]
	return ok
}

// Description returns the clinical description for the scale point.
func (t BristolType) Description() string {
	return bristolDescriptions[t]
}
