package service

import "context"

// DeepLinkMedicationSets is the destination opened when a reminder notification is tapped.
const DeepLinkMedicationSets = "medication_sets"

// Notifier is the notification collaborator. At most one notification is
// visible per key; showing a key again replaces it.
type Notifier interface {
	ShowNotification(ctx context.Context, key, title, body, deepLink string) error
	CancelNotification(ctx context.Context, key string) error
}

// ReminderReceiver reacts to fired wake-ups and to process start.
type ReminderReceiver interface {
	// HandleBoot reschedules every enabled reminder. It never notifies.
	HandleBoot(ctx context.Context) error
	// HandleReminderFired reschedules the reminder and notifies unless its set
	// was already logged today.
	HandleReminderFired(ctx context.Context, reminderID uint) error
}
