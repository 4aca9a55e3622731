package entity

import (
	"time"

	"healthlog/internal/domain/constant"
)

// MedicationSet is a named group of medications logged together.
type MedicationSet struct {
	Base
	Name      string              `gorm:"column:name" json:"name"`
	CreatedAt time.Time           `gorm:"column:created_at" json:"createdAt"`
	Items     []MedicationSetItem `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"items"`
}

func (MedicationSet) TableName() string { return "medication_sets" }

// MedicationSetItem is one medication inside a set.
type MedicationSetItem struct {
	Base
	SetID  uint   `gorm:"column:set_id;index" json:"-"`
	Name   string `gorm:"column:name" json:"name"`
	Dosage string `gorm:"column:dosage" json:"dosage"`
}

func (MedicationSetItem) TableName() string { return "medication_set_items" }

// MedicationSetLog records that a set was logged. Rows are never updated.
type MedicationSetLog struct {
	Base
	SetID     uint      `gorm:"column:set_id;index" json:"setId"`
	Timestamp time.Time `gorm:"column:timestamp;index" json:"timestamp"`
}

func (MedicationSetLog) TableName() string { return "medication_set_logs" }

// MedicationSetReminder is a recurring day/time rule attached to a set.
type MedicationSetReminder struct {
	Base
	SetID      uint                `gorm:"column:set_id;index" json:"setId"`
	Hour       int                 `gorm:"column:hour" json:"hour"`
	Minute     int                 `gorm:"column:minute" json:"minute"`
	DaysOfWeek constant.DaysOfWeek `gorm:"column:days_of_week" json:"daysOfWeek"`
	Enabled    bool                `gorm:"column:enabled;index" json:"enabled"`
}

func (MedicationSetReminder) TableName() string { return "medication_set_reminders" }
