package dto

import (
	"time"

	"healthlog/internal/domain/constant"
	"healthlog/internal/domain/entity"
)

// ReminderResponse is the DTO for sending reminder information to the client.
type ReminderResponse struct {
	ID          uint       `json:"id"`
	SetID       uint       `json:"setId"`
	Hour        int        `json:"hour"`
	Minute      int        `json:"minute"`
	DaysOfWeek  int        `json:"daysOfWeek"`
	Days        string     `json:"days"`
	Enabled     bool       `json:"enabled"`
	NextTrigger *time.Time `json:"nextTrigger,omitempty"`
}

// ToReminderResponse converts an entity.MedicationSetReminder to a ReminderResponse DTO.
// next is only reported for enabled reminders.
func ToReminderResponse(r *entity.MedicationSetReminder, next time.Time) ReminderResponse {
	resp := ReminderResponse{
		ID:         r.ID,
		SetID:      r.SetID,
		Hour:       r.Hour,
		Minute:     r.Minute,
		DaysOfWeek: r.DaysOfWeek.Int(),
		Days:       constant.ToDisplayString(r.DaysOfWeek),
		Enabled:    r.Enabled,
	}
	if r.Enabled && !next.IsZero() {
		resp.NextTrigger = &next
	}
	return resp
}

// SaveReminderRequest is the DTO for creating or updating a reminder.
type SaveReminderRequest struct {
	Hour       int  `json:"hour"`
	Minute     int  `json:"minute"`
	DaysOfWeek int  `json:"daysOfWeek"`
	Enabled    bool `json:"enabled"`
}
