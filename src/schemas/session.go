package schemas

import (
	"time"

	"therapy-scheduler/src/models"
)

// ScheduleRequest represents the request body for scheduling a new session.
// Priority defaults to 1 when omitted or zero.
type ScheduleRequest struct {
	PractitionerID string    `json:"practitioner_id" binding:"required"`
	PatientID      string    `json:"patient_id" binding:"required"`
	TimeSlot       time.Time `json:"time_slot" binding:"required"`
	Priority       int       `json:"priority"`
}

// MoveToWaitingRequest represents the request body for moving a session to
// the waiting queue. Reason is optional.
type MoveToWaitingRequest struct {
	Reason string `json:"reason"`
}

// QueueResponse represents an ordered queue view.
type QueueResponse struct {
	Sessions []models.TherapySession `json:"sessions"`
}

// RescheduleResponse represents the outcome of a reschedule sweep.
// Message is set only when no session could be rescheduled.
type RescheduleResponse struct {
	Rescheduled []models.TherapySession `json:"rescheduled"`
	Message     string                  `json:"message,omitempty"`
}
