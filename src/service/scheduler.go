package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"therapy-scheduler/src/models"
)

// DefaultPriority is assigned when a caller omits the priority field.
const DefaultPriority = 1

// DefaultWaitingReason is recorded when a session is moved to the waiting
// queue without an explicit reason.
const DefaultWaitingReason = "moved to waiting due to an unforeseen event"

// SessionStore is the store collaborator the scheduler drives. All mutable
// state lives behind it; the scheduler itself holds nothing between calls.
type SessionStore interface {
	CreateSession(ctx context.Context, practitionerID, patientID string, timeSlot time.Time, priority int) (*models.TherapySession, error)
	GetSessionByID(ctx context.Context, sessionID string) (*models.TherapySession, error)
	ListByStatus(ctx context.Context, status models.SessionStatus) ([]models.TherapySession, error)
	ListReadyQueue(ctx context.Context) ([]models.TherapySession, error)
	ListWaitingQueue(ctx context.Context) ([]models.TherapySession, error)
	UpdateSession(ctx context.Context, session *models.TherapySession) error
}

// DonorPolicy selects which scheduled session a waiting session takes its
// slot from. It returns the index of the chosen donor, whether that donor
// must be withdrawn from the candidate pool for the rest of the sweep, and
// whether any donor matched at all.
type DonorPolicy func(waiting models.TherapySession, donors []models.TherapySession) (donor int, withdraw bool, ok bool)

// FirstDifferingSlot picks the first scheduled session whose slot differs
// from the waiting session's. The donor stays in the pool and keeps its own
// slot, so one scheduled session can donate its slot to several waiting
// sessions in the same sweep.
func FirstDifferingSlot(waiting models.TherapySession, donors []models.TherapySession) (int, bool, bool) {
	for i, donor := range donors {
		if !donor.TimeSlot.Equal(waiting.TimeSlot) {
			return i, false, true
		}
	}
	return 0, false, false
}

// ExclusiveFirstDifferingSlot matches like FirstDifferingSlot but withdraws
// the donor from the pool, so each slot is donated at most once per sweep.
// Not the default.
func ExclusiveFirstDifferingSlot(waiting models.TherapySession, donors []models.TherapySession) (int, bool, bool) {
	i, _, ok := FirstDifferingSlot(waiting, donors)
	return i, true, ok
}

// SchedulerService owns the therapy session queue state machine. Every queue
// view is recomputed from the store per call.
type SchedulerService struct {
	store       SessionStore
	notifier    *QueueNotifier
	donorPolicy DonorPolicy
}

// NewSchedulerService creates a scheduler over the given store. The notifier
// may be nil, in which case no queue events are published.
func NewSchedulerService(store SessionStore, notifier *QueueNotifier) *SchedulerService {
	return &SchedulerService{
		store:       store,
		notifier:    notifier,
		donorPolicy: FirstDifferingSlot,
	}
}

// SetDonorPolicy overrides how the reschedule sweep matches waiting sessions
// to slot donors.
func (s *SchedulerService) SetDonorPolicy(policy DonorPolicy) {
	s.donorPolicy = policy
}

// Schedule creates a new session in SCHEDULED status. A zero priority is
// treated as omitted and defaults to 1; the time slot is not validated for
// availability or overlap.
func (s *SchedulerService) Schedule(ctx context.Context, practitionerID, patientID string, timeSlot time.Time, priority int) (*models.TherapySession, error) {
	if priority == 0 {
		priority = DefaultPriority
	}

	session, err := s.store.CreateSession(ctx, practitionerID, patientID, timeSlot, priority)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule session: %w", err)
	}

	return session, nil
}

// ReadyQueue returns all SCHEDULED sessions ordered by priority descending,
// then time slot ascending. The head of the list is the next session to be
// served.
func (s *SchedulerService) ReadyQueue(ctx context.Context) ([]models.TherapySession, error) {
	sessions, err := s.store.ListReadyQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ready queue: %w", err)
	}
	return sessions, nil
}

// WaitingQueue returns all WAITING sessions ordered by priority descending.
func (s *SchedulerService) WaitingQueue(ctx context.Context) ([]models.TherapySession, error) {
	sessions, err := s.store.ListWaitingQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting queue: %w", err)
	}
	return sessions, nil
}

// MoveToWaiting displaces a session to the waiting queue with the given
// reason, defaulting when empty. The transition is deliberately blunt: it
// applies regardless of the session's prior status. Returns
// models.ErrSessionNotFound when the session does not exist.
func (s *SchedulerService) MoveToWaiting(ctx context.Context, sessionID, reason string) (*models.TherapySession, error) {
	session, err := s.store.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if reason == "" {
		reason = DefaultWaitingReason
	}

	session.Status = models.StatusWaiting
	session.Reason = reason

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to move session to waiting: %w", err)
	}

	slog.Info("Moved session to waiting queue",
		"session_id", session.SessionID,
		"reason", reason)

	s.notifier.SessionWaitlisted(session)

	return session, nil
}

// RescheduleSweep attempts to re-pack every waiting session onto a slot held
// by a currently scheduled session, highest priority first. Each match is
// persisted individually; a failed update is recorded and the sweep moves on,
// so earlier reschedules in the same sweep are never rolled back. An empty
// result with a nil error means no suitable slot was available.
func (s *SchedulerService) RescheduleSweep(ctx context.Context) ([]models.TherapySession, error) {
	waiting, err := s.store.ListWaitingQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting queue: %w", err)
	}

	// Donor candidates in store order, snapshot once for the whole sweep.
	donors, err := s.store.ListByStatus(ctx, models.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled sessions: %w", err)
	}

	rescheduled := []models.TherapySession{}
	var updateErrs []error

	for _, session := range waiting {
		idx, withdraw, ok := s.donorPolicy(session, donors)
		if !ok {
			// No scheduled session holds a differing slot for this one.
			continue
		}
		donor := donors[idx]

		session.TimeSlot = donor.TimeSlot
		session.Status = models.StatusScheduled
		session.Reason = ""

		if err := s.store.UpdateSession(ctx, &session); err != nil {
			updateErrs = append(updateErrs, fmt.Errorf("session %s: %w", session.SessionID, err))
			continue
		}

		if withdraw {
			donors = append(donors[:idx], donors[idx+1:]...)
		}

		slog.Info("Rescheduled waiting session",
			"session_id", session.SessionID,
			"time_slot", session.TimeSlot,
			"donor_session_id", donor.SessionID)

		s.notifier.SessionRescheduled(&session)
		rescheduled = append(rescheduled, session)
	}

	if len(updateErrs) > 0 {
		return rescheduled, fmt.Errorf("reschedule sweep completed with failures: %w", errors.Join(updateErrs...))
	}

	return rescheduled, nil
}
