package service

import (
	"encoding/json"
	"log/slog"
	"time"

	"therapy-scheduler/src/config"
	"therapy-scheduler/src/models"
	"therapy-scheduler/src/rabbitmq"
)

// QueueEvent is the payload published to the queue-events exchange when a
// session changes queue.
type QueueEvent struct {
	Event     string               `json:"event"`
	SessionID string               `json:"session_id"`
	Status    models.SessionStatus `json:"status"`
	TimeSlot  time.Time            `json:"time_slot"`
	Reason    string               `json:"reason,omitempty"`
}

// QueueNotifier publishes queue events for external collaborators (e.g. the
// notification service). Publishing is best-effort: failures are logged and
// never surfaced to the scheduling operation that triggered them. A nil
// notifier is valid and publishes nothing.
type QueueNotifier struct {
	publisher rabbitmq.Publisher
}

// NewQueueNotifier creates a notifier over the given publisher.
func NewQueueNotifier(publisher rabbitmq.Publisher) *QueueNotifier {
	return &QueueNotifier{
		publisher: publisher,
	}
}

// SessionWaitlisted announces that a session was displaced to the waiting queue.
func (n *QueueNotifier) SessionWaitlisted(session *models.TherapySession) {
	n.publish("session.waitlisted", session)
}

// SessionRescheduled announces that a waiting session regained a slot.
func (n *QueueNotifier) SessionRescheduled(session *models.TherapySession) {
	n.publish("session.rescheduled", session)
}

func (n *QueueNotifier) publish(event string, session *models.TherapySession) {
	if n == nil || n.publisher == nil {
		return
	}

	body, err := json.Marshal(QueueEvent{
		Event:     event,
		SessionID: session.SessionID,
		Status:    session.Status,
		TimeSlot:  session.TimeSlot,
		Reason:    session.Reason,
	})
	if err != nil {
		slog.Error("Failed to marshal queue event", "event", event, "error", err)
		return
	}

	if err := n.publisher.Publish(config.QUEUE_EVENTS_EXCHANGE, body); err != nil {
		slog.Error("Failed to publish queue event",
			"event", event,
			"session_id", session.SessionID,
			"error", err)
	}
}
