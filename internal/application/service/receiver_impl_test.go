package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthlog/internal/domain/constant"
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"
	"healthlog/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	clientmodel "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m clientmodel.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

type receiverFixture struct {
	store    *repository.Store
	alarm    *fakeAlarm
	notifier *fakeNotifier
	metrics  *metrics.Metrics
	receiver ReminderReceiver
	set      *entity.MedicationSet
}

func newReceiverFixture(t *testing.T, now time.Time, loc *time.Location) *receiverFixture {
	t.Helper()
	f := &receiverFixture{
		store:    newTestStore(t),
		alarm:    newFakeAlarm(),
		notifier: newFakeNotifier(),
		metrics:  metrics.NewUnregistered(),
	}
	clock := fixedClock(now)
	sched := NewReminderScheduler(f.alarm, f.store.Reminders, clock, loc, logger.NewNop(), f.metrics)
	f.receiver = NewReminderReceiver(sched, f.store, f.notifier, clock, loc, logger.NewNop(), f.metrics)

	f.set = &entity.MedicationSet{
		Name:  "Morning pills",
		Items: []entity.MedicationSetItem{{Name: "Vitamin D", Dosage: "1000 IU"}},
	}
	require.NoError(t, f.store.MedicationSets.Create(context.Background(), f.set))
	return f
}

func (f *receiverFixture) addReminder(t *testing.T, setID uint, enabled bool) uint {
	t.Helper()
	id, err := f.store.Reminders.Create(context.Background(), &entity.MedicationSetReminder{
		SetID: setID, Hour: 8, Minute: 0, DaysOfWeek: constant.EveryDay, Enabled: enabled,
	})
	require.NoError(t, err)
	return id
}

func TestHandleReminderFiredShowsNotification(t *testing.T) {
	now := time.Date(2026, 10, 14, 8, 0, 1, 0, time.UTC)
	f := newReceiverFixture(t, now, time.UTC)
	id := f.addReminder(t, f.set.ID, true)

	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), id))

	require.Len(t, f.notifier.shown, 1)
	n := f.notifier.shown[0]
	assert.Equal(t, NotificationKey(f.set.ID), n.key)
	assert.Equal(t, "Medication reminder", n.title)
	assert.Equal(t, "Time to take Morning pills", n.body)
	assert.Equal(t, DeepLinkMedicationSets, n.deepLink)

	w, ok := f.alarm.get(WakeupID(id))
	require.True(t, ok, "enabled reminder reschedules itself")
	assert.Equal(t, time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC), w.at)

	assert.Equal(t, 1.0, counterValue(t, f.metrics.RemindersFired))
	assert.Equal(t, 1.0, counterValue(t, f.metrics.NotificationsShown))
}

func TestHandleReminderFiredSuppressedWhenLoggedToday(t *testing.T) {
	now := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	f := newReceiverFixture(t, now, time.UTC)
	id := f.addReminder(t, f.set.ID, true)

	_, err := f.store.MedicationSets.LogSet(context.Background(), f.set, time.Date(2026, 10, 14, 7, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), id))
	assert.Empty(t, f.notifier.shown)
	assert.Equal(t, 1.0, counterValue(t, f.metrics.NotificationsSuppressed))

	_, ok := f.alarm.get(WakeupID(id))
	assert.True(t, ok, "suppressed reminder is still rescheduled")
}

func TestHandleReminderFiredNotifiesWhenLoggedYesterday(t *testing.T) {
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	f := newReceiverFixture(t, now, time.UTC)
	id := f.addReminder(t, f.set.ID, true)

	_, err := f.store.MedicationSets.LogSet(context.Background(), f.set, time.Date(2026, 10, 13, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), id))
	assert.Len(t, f.notifier.shown, 1)
}

func TestHandleReminderFiredUsesLocalDay(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, tokyo)

	t.Run("logged after local midnight", func(t *testing.T) {
		f := newReceiverFixture(t, now, tokyo)
		id := f.addReminder(t, f.set.ID, true)
		// 23:30 UTC on the 14th is 08:30 on the 15th in UTC+9.
		_, err := f.store.MedicationSets.LogSet(context.Background(), f.set, time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC))
		require.NoError(t, err)

		require.NoError(t, f.receiver.HandleReminderFired(context.Background(), id))
		assert.Empty(t, f.notifier.shown)
	})

	t.Run("logged before local midnight", func(t *testing.T) {
		f := newReceiverFixture(t, now, tokyo)
		id := f.addReminder(t, f.set.ID, true)
		// 14:00 UTC on the 14th is 23:00 on the 14th in UTC+9.
		_, err := f.store.MedicationSets.LogSet(context.Background(), f.set, time.Date(2026, 10, 14, 14, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.NoError(t, f.receiver.HandleReminderFired(context.Background(), id))
		assert.Len(t, f.notifier.shown, 1)
	})
}

func TestHandleReminderFiredMissingReminder(t *testing.T) {
	f := newReceiverFixture(t, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC), time.UTC)

	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), 404))
	assert.Empty(t, f.notifier.shown)
	assert.Empty(t, f.alarm.pending)
}

func TestHandleReminderFiredDeletedSetUsesGenericLabel(t *testing.T) {
	f := newReceiverFixture(t, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC), time.UTC)
	id := f.addReminder(t, 999, true)

	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), id))
	require.Len(t, f.notifier.shown, 1)
	assert.Equal(t, "Time to take your medications", f.notifier.shown[0].body)
	assert.Equal(t, NotificationKey(999), f.notifier.shown[0].key)
}

func TestHandleReminderFiredDisabledReminderIsNotRescheduled(t *testing.T) {
	f := newReceiverFixture(t, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC), time.UTC)
	id := f.addReminder(t, f.set.ID, false)

	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), id))
	_, ok := f.alarm.get(WakeupID(id))
	assert.False(t, ok)
	assert.Len(t, f.notifier.shown, 1)
}

func TestRemindersOfOneSetShareNotificationSlot(t *testing.T) {
	f := newReceiverFixture(t, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC), time.UTC)
	first := f.addReminder(t, f.set.ID, true)
	second := f.addReminder(t, f.set.ID, true)

	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), first))
	require.NoError(t, f.receiver.HandleReminderFired(context.Background(), second))

	assert.Len(t, f.notifier.shown, 2)
	assert.Len(t, f.notifier.active, 1)
	assert.Contains(t, f.notifier.active, NotificationKey(f.set.ID))
}

func TestHandleReminderFiredNotifierFailure(t *testing.T) {
	f := newReceiverFixture(t, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC), time.UTC)
	id := f.addReminder(t, f.set.ID, true)
	f.notifier.failErr = errors.New("push rejected")

	err := f.receiver.HandleReminderFired(context.Background(), id)
	assert.ErrorIs(t, err, appErrors.ErrNotification)
	// The next occurrence was registered before delivery was attempted.
	_, ok := f.alarm.get(WakeupID(id))
	assert.True(t, ok)
}

func TestHandleBootReschedulesEnabledReminders(t *testing.T) {
	f := newReceiverFixture(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), time.UTC)
	enabled := f.addReminder(t, f.set.ID, true)
	disabled := f.addReminder(t, f.set.ID, false)

	require.NoError(t, f.receiver.HandleBoot(context.Background()))

	_, ok := f.alarm.get(WakeupID(enabled))
	assert.True(t, ok)
	_, ok = f.alarm.get(WakeupID(disabled))
	assert.False(t, ok)
}

func TestNotificationKeyRoundTrip(t *testing.T) {
	id, ok := SetIDFromNotificationKey(NotificationKey(42))
	require.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = SetIDFromNotificationKey("reminder-42")
	assert.False(t, ok)
	_, ok = SetIDFromNotificationKey("medication-set-42x")
	assert.False(t, ok)
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	from, to := DayBounds(time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, loc), to)
}
