package errors

import "errors"

// Custom application errors
var (
	ErrEntryNotFound         = errors.New("entry not found")
	ErrMedicationSetNotFound = errors.New("medication set not found")
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrInvalidReminder       = errors.New("invalid reminder configuration")
	ErrInvalidEntry          = errors.New("invalid entry")
	ErrDatabaseOperation     = errors.New("database operation failed")
	ErrNotification          = errors.New("failed to deliver notification")
	ErrScheduling            = errors.New("failed to schedule wake-up")
	ErrInternalServer        = errors.New("internal server error")
)
