package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"healthlog/internal/domain/constant"
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	"healthlog/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "nested", "test.db"), "silent", logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func newTestStore(t *testing.T) (*repository.Store, *gorm.DB) {
	db := newTestDB(t)
	return NewStore(db), db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestEntryRepositoryCRUD(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Symptoms.Create(ctx, &entity.Symptom{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Name:      "Headache",
			Severity:  i + 1,
		}))
	}

	recent, err := store.Symptoms.FindRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].Severity, "newest first")
	assert.Equal(t, 2, recent[1].Severity)

	got, err := store.Symptoms.FindByID(ctx, recent[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	got.Notes = "after coffee"
	require.NoError(t, store.Symptoms.Update(ctx, got))

	again, err := store.Symptoms.FindByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "after coffee", again.Notes)

	require.NoError(t, store.Symptoms.DeleteByID(ctx, got.ID))
	missing, err := store.Symptoms.FindByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := store.Symptoms.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMealRepositoryChildren(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	meal := &entity.Meal{
		Timestamp: time.Now().UTC(),
		MealType:  constant.MealTypeBreakfast,
		Foods:     []entity.MealFood{{Name: "Toast", Quantity: "2"}, {Name: "Egg", Quantity: "1"}},
		Tags:      []entity.MealTag{{Name: "quick"}},
	}
	require.NoError(t, store.Meals.Create(ctx, meal))

	loaded, err := store.Meals.FindByID(ctx, meal.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Foods, 2)
	require.Len(t, loaded.Tags, 1)

	loaded.Foods = []entity.MealFood{{Name: "Porridge", Quantity: "1 bowl"}}
	loaded.Tags = nil
	require.NoError(t, store.Meals.Update(ctx, loaded))

	updated, err := store.Meals.FindByID(ctx, meal.ID)
	require.NoError(t, err)
	require.Len(t, updated.Foods, 1)
	assert.Equal(t, "Porridge", updated.Foods[0].Name)
	assert.Empty(t, updated.Tags)
	assert.EqualValues(t, 1, count(t, db, &entity.MealFood{}))

	require.NoError(t, store.Meals.DeleteByID(ctx, meal.ID))
	assert.EqualValues(t, 0, count(t, db, &entity.MealFood{}))
	assert.EqualValues(t, 0, count(t, db, &entity.MealTag{}))
}

func TestMedicationSetCascadeDelete(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	set := &entity.MedicationSet{
		Name:  "Night",
		Items: []entity.MedicationSetItem{{Name: "Melatonin", Dosage: "3mg"}},
	}
	require.NoError(t, store.MedicationSets.Create(ctx, set))
	other := &entity.MedicationSet{Name: "Other", Items: []entity.MedicationSetItem{{Name: "Iron"}}}
	require.NoError(t, store.MedicationSets.Create(ctx, other))

	_, err := store.Reminders.Create(ctx, &entity.MedicationSetReminder{SetID: set.ID, Hour: 22, DaysOfWeek: constant.EveryDay, Enabled: true})
	require.NoError(t, err)
	_, err = store.MedicationSets.LogSet(ctx, set, time.Now())
	require.NoError(t, err)

	require.NoError(t, store.MedicationSets.DeleteByID(ctx, set.ID))

	gone, err := store.MedicationSets.FindByID(ctx, set.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.EqualValues(t, 1, count(t, db, &entity.MedicationSetItem{}), "only the other set's item remains")
	assert.EqualValues(t, 0, count(t, db, &entity.MedicationSetLog{}))
	assert.EqualValues(t, 0, count(t, db, &entity.MedicationSetReminder{}))

	// Medication rows written by LogSet are journal history and survive.
	assert.EqualValues(t, 1, count(t, db, &entity.Medication{}))
}

func TestMedicationSetUpdateReplacesItems(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	set := &entity.MedicationSet{Name: "Morning", Items: []entity.MedicationSetItem{{Name: "A"}, {Name: "B"}}}
	require.NoError(t, store.MedicationSets.Create(ctx, set))

	set.Name = "Breakfast"
	set.Items = []entity.MedicationSetItem{{Name: "C", Dosage: "5mg"}}
	require.NoError(t, store.MedicationSets.Update(ctx, set))

	loaded, err := store.MedicationSets.FindByID(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", loaded.Name)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "C", loaded.Items[0].Name)
	assert.EqualValues(t, 1, count(t, db, &entity.MedicationSetItem{}))
}

func TestLogSetWritesMedications(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	set := &entity.MedicationSet{
		Name:  "Morning",
		Items: []entity.MedicationSetItem{{Name: "Vitamin D", Dosage: "1000 IU"}, {Name: "Omega 3", Dosage: "1g"}},
	}
	require.NoError(t, store.MedicationSets.Create(ctx, set))

	at := time.Date(2026, 10, 14, 7, 45, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	setLog, err := store.MedicationSets.LogSet(ctx, set, at)
	require.NoError(t, err)
	assert.Equal(t, set.ID, setLog.SetID)
	assert.True(t, setLog.Timestamp.Equal(at))

	meds, err := store.Medications.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, meds, 2)
	assert.Equal(t, "Vitamin D", meds[0].Name)
	assert.Equal(t, "1000 IU", meds[0].Dosage)
	assert.Equal(t, "Morning", meds[0].Notes)
	assert.True(t, meds[1].Timestamp.Equal(at))

	logs, err := store.SetLogs.FindBySetID(ctx, set.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestExistsBetween(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	set := &entity.MedicationSet{Name: "S"}
	require.NoError(t, store.MedicationSets.Create(ctx, set))

	loc := time.FixedZone("UTC-5", -5*60*60)
	require.NoError(t, store.SetLogs.Create(ctx, &entity.MedicationSetLog{
		SetID:     set.ID,
		Timestamp: time.Date(2026, 10, 14, 23, 30, 0, 0, loc),
	}))

	from := time.Date(2026, 10, 14, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	ok, err := store.SetLogs.ExistsBetween(ctx, set.ID, from, to)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetLogs.ExistsBetween(ctx, set.ID, to, to.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, ok, "upper bound is exclusive of the next day")

	ok, err = store.SetLogs.ExistsBetween(ctx, set.ID+1, from, to)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReminderRepositoryFindEnabled(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i, enabled := range []bool{true, false, true} {
		_, err := store.Reminders.Create(ctx, &entity.MedicationSetReminder{
			SetID: 1, Hour: 20 - i, DaysOfWeek: constant.Monday, Enabled: enabled,
		})
		require.NoError(t, err)
	}

	enabled, err := store.Reminders.FindEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)

	bySet, err := store.Reminders.FindBySetID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bySet, 3)
	assert.Equal(t, 18, bySet[0].Hour, "ordered by time of day")

	bySet[1].Enabled = true
	require.NoError(t, store.Reminders.Update(ctx, bySet[1]))
	enabled, err = store.Reminders.FindEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 3)

	require.NoError(t, store.Reminders.Delete(ctx, bySet[0].ID))
	r, err := store.Reminders.FindByID(ctx, bySet[0].ID)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestWatchEmitsSnapshots(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := store.Weight.Watch(ctx)
	receive := func() []entity.Weight {
		select {
		case v := <-updates:
			return v
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}

	assert.Empty(t, receive())
	require.NoError(t, store.Weight.Create(ctx, &entity.Weight{Timestamp: time.Now(), Value: 70, Unit: constant.WeightUnitKG}))
	assert.Len(t, receive(), 1)

	cancel()
	for range updates {
	}
}

func TestLogSetNotifiesMedicationWatchers(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	set := &entity.MedicationSet{Name: "M", Items: []entity.MedicationSetItem{{Name: "X"}}}
	require.NoError(t, store.MedicationSets.Create(ctx, set))

	updates := store.Medications.Watch(ctx)
	first := <-updates
	assert.Empty(t, first)

	_, err := store.MedicationSets.LogSet(ctx, set, time.Now())
	require.NoError(t, err)

	select {
	case meds := <-updates:
		assert.Len(t, meds, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("medication watchers were not notified")
	}
}
