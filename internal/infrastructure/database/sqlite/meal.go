package sqlite

import (
	"context"
	"fmt"

	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"

	"gorm.io/gorm"
)

type mealRepository struct {
	*entryRepository[entity.Meal]
}

// NewMealRepository creates a meal repository that loads foods and tags with each meal.
func NewMealRepository(db *gorm.DB) repository.EntryRepository[entity.Meal] {
	return &mealRepository{
		entryRepository: newEntryRepository[entity.Meal](db, "meal", defaultRecentOrder, "Foods", "Tags"),
	}
}

// Update saves the meal and replaces its foods and tags with the ones given.
func (r *mealRepository) Update(ctx context.Context, meal *entity.Meal) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&entity.MealFood{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&entity.MealTag{}).Error; err != nil {
			return err
		}
		for i := range meal.Foods {
			meal.Foods[i].ID = 0
			meal.Foods[i].MealID = meal.ID
		}
		for i := range meal.Tags {
			meal.Tags[i].ID = 0
			meal.Tags[i].MealID = meal.ID
		}
		return tx.Save(meal).Error
	})
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update meal %d: %w", meal.ID, err)
	}
	r.feed.notify()
	return nil
}
