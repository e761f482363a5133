package models

import "time"

// SessionStatus represents the status of a therapy session
type SessionStatus string

const (
	StatusScheduled SessionStatus = "SCHEDULED"
	StatusWaiting   SessionStatus = "WAITING"
	StatusCompleted SessionStatus = "COMPLETED"
	StatusCancelled SessionStatus = "CANCELLED"
)

// IsValid reports whether s is one of the four known status values.
func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusWaiting, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TherapySession represents a therapy session in the database.
// TimeSlot is meaningful only while the session is SCHEDULED; Reason is
// non-empty only while the session is WAITING.
type TherapySession struct {
	SessionID      string        `json:"session_id"`
	PractitionerID string        `json:"practitioner_id"`
	PatientID      string        `json:"patient_id"`
	TimeSlot       time.Time     `json:"time_slot"`
	Status         SessionStatus `json:"status"`
	Priority       int           `json:"priority"`
	Reason         string        `json:"reason,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}
