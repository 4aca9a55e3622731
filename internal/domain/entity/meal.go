package entity

import (
	"time"

	"healthlog/internal/domain/constant"
)

// Meal is a logged meal with the foods eaten and free-form tags.
type Meal struct {
	Base
	Timestamp time.Time         `gorm:"column:timestamp;index" json:"timestamp"`
	MealType  constant.MealType `gorm:"column:meal_type" json:"mealType"`
	Notes     string            `gorm:"column:notes;type:text" json:"notes"`
	Foods     []MealFood        `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"foods"`
	Tags      []MealTag         `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"tags"`
}

func (Meal) TableName() string { return "meals" }

// MealFood is one food item of a meal.
type MealFood struct {
	Base
	MealID   uint   `gorm:"column:meal_id;index" json:"-"`
	Name     string `gorm:"column:name" json:"name"`
	Quantity string `gorm:"column:quantity" json:"quantity"`
}

func (MealFood) TableName() string { return "meal_foods" }

// MealTag is a label attached to a meal.
type MealTag struct {
	Base
	MealID uint   `gorm:"column:meal_id;index" json:"-"`
	Name   string `gorm:"column:name" json:"name"`
}

func (MealTag) TableName() string { return "meal_tags" }
