package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"therapy-scheduler/src/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	slotT1 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	slotT2 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slotT3 = time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
)

// fakeStore is an in-memory SessionStore keeping sessions in insertion
// order, mirroring the repository's created_at ordering.
type fakeStore struct {
	sessions   []*models.TherapySession
	clock      time.Time
	failUpdate map[string]error
	failList   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		failUpdate: map[string]error{},
	}
}

func (f *fakeStore) CreateSession(_ context.Context, practitionerID, patientID string, timeSlot time.Time, priority int) (*models.TherapySession, error) {
	f.clock = f.clock.Add(time.Second)
	session := &models.TherapySession{
		SessionID:      uuid.New().String(),
		PractitionerID: practitionerID,
		PatientID:      patientID,
		TimeSlot:       timeSlot,
		Status:         models.StatusScheduled,
		Priority:       priority,
		CreatedAt:      f.clock,
	}
	f.sessions = append(f.sessions, session)
	copied := *session
	return &copied, nil
}

func (f *fakeStore) GetSessionByID(_ context.Context, sessionID string) (*models.TherapySession, error) {
	for _, s := range f.sessions {
		if s.SessionID == sessionID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, models.ErrSessionNotFound
}

func (f *fakeStore) ListByStatus(_ context.Context, status models.SessionStatus) ([]models.TherapySession, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	out := []models.TherapySession{}
	for _, s := range f.sessions {
		if s.Status == status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListReadyQueue(ctx context.Context) ([]models.TherapySession, error) {
	out, err := f.ListByStatus(ctx, models.StatusScheduled)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].TimeSlot.Before(out[j].TimeSlot)
	})
	return out, nil
}

func (f *fakeStore) ListWaitingQueue(ctx context.Context) ([]models.TherapySession, error) {
	out, err := f.ListByStatus(ctx, models.StatusWaiting)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out, nil
}

func (f *fakeStore) UpdateSession(_ context.Context, session *models.TherapySession) error {
	if err := f.failUpdate[session.SessionID]; err != nil {
		return err
	}
	for _, s := range f.sessions {
		if s.SessionID == session.SessionID {
			s.TimeSlot = session.TimeSlot
			s.Status = session.Status
			s.Reason = session.Reason
			return nil
		}
	}
	return models.ErrSessionNotFound
}

func mustSchedule(t *testing.T, s *SchedulerService, practitionerID, patientID string, slot time.Time, priority int) *models.TherapySession {
	t.Helper()
	session, err := s.Schedule(context.Background(), practitionerID, patientID, slot, priority)
	require.NoError(t, err)
	return session
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesScheduledSession", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		session, err := scheduler.Schedule(ctx, "pr1", "pa1", slotT1, 1)
		require.NoError(t, err)

		assert.NotEmpty(t, session.SessionID)
		assert.Equal(t, "pr1", session.PractitionerID)
		assert.Equal(t, "pa1", session.PatientID)
		assert.True(t, session.TimeSlot.Equal(slotT1))
		assert.Equal(t, models.StatusScheduled, session.Status)
		assert.Empty(t, session.Reason)

		ready, err := scheduler.ReadyQueue(ctx)
		require.NoError(t, err)
		require.Len(t, ready, 1)
		assert.Equal(t, session.SessionID, ready[0].SessionID)
	})

	t.Run("DefaultsPriorityToOne", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		session, err := scheduler.Schedule(ctx, "pr1", "pa1", slotT1, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultPriority, session.Priority)
	})

	t.Run("KeepsCallerSuppliedPriority", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		session, err := scheduler.Schedule(ctx, "pr1", "pa1", slotT1, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, session.Priority)
	})
}

func TestQueueOrdering(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadyQueuePriorityDescThenSlotAsc", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		low := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 1)
		highLate := mustSchedule(t, scheduler, "pr2", "pa2", slotT2, 5)
		highEarly := mustSchedule(t, scheduler, "pr3", "pa3", slotT1, 5)

		ready, err := scheduler.ReadyQueue(ctx)
		require.NoError(t, err)
		require.Len(t, ready, 3)
		assert.Equal(t, highEarly.SessionID, ready[0].SessionID)
		assert.Equal(t, highLate.SessionID, ready[1].SessionID)
		assert.Equal(t, low.SessionID, ready[2].SessionID)
	})

	t.Run("WaitingQueuePriorityDescOnly", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		first := mustSchedule(t, scheduler, "pr1", "pa1", slotT2, 2)
		second := mustSchedule(t, scheduler, "pr2", "pa2", slotT1, 2)
		urgent := mustSchedule(t, scheduler, "pr3", "pa3", slotT3, 9)

		for _, s := range []*models.TherapySession{first, second, urgent} {
			_, err := scheduler.MoveToWaiting(ctx, s.SessionID, "conflict")
			require.NoError(t, err)
		}

		waiting, err := scheduler.WaitingQueue(ctx)
		require.NoError(t, err)
		require.Len(t, waiting, 3)
		assert.Equal(t, urgent.SessionID, waiting[0].SessionID)
		// Equal priorities keep insertion order.
		assert.Equal(t, first.SessionID, waiting[1].SessionID)
		assert.Equal(t, second.SessionID, waiting[2].SessionID)
	})

	t.Run("EmptyQueuesAreValid", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		ready, err := scheduler.ReadyQueue(ctx)
		require.NoError(t, err)
		assert.Empty(t, ready)

		waiting, err := scheduler.WaitingQueue(ctx)
		require.NoError(t, err)
		assert.Empty(t, waiting)
	})
}

func TestMoveToWaiting(t *testing.T) {
	ctx := context.Background()

	t.Run("SetsStatusAndReason", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)
		session := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 1)

		moved, err := scheduler.MoveToWaiting(ctx, session.SessionID, "room unavailable")
		require.NoError(t, err)
		assert.Equal(t, session.SessionID, moved.SessionID)
		assert.Equal(t, models.StatusWaiting, moved.Status)
		assert.Equal(t, "room unavailable", moved.Reason)

		ready, err := scheduler.ReadyQueue(ctx)
		require.NoError(t, err)
		assert.Empty(t, ready)

		waiting, err := scheduler.WaitingQueue(ctx)
		require.NoError(t, err)
		require.Len(t, waiting, 1)
		assert.Equal(t, "room unavailable", waiting[0].Reason)
	})

	t.Run("DefaultsReasonWhenOmitted", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)
		session := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 1)

		moved, err := scheduler.MoveToWaiting(ctx, session.SessionID, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultWaitingReason, moved.Reason)
	})

	t.Run("AppliesRegardlessOfPriorStatus", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)
		session := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 1)

		_, err := scheduler.MoveToWaiting(ctx, session.SessionID, "first")
		require.NoError(t, err)

		moved, err := scheduler.MoveToWaiting(ctx, session.SessionID, "second")
		require.NoError(t, err)
		assert.Equal(t, models.StatusWaiting, moved.Status)
		assert.Equal(t, "second", moved.Reason)
	})

	t.Run("UnknownSessionIsNotFound", func(t *testing.T) {
		store := newFakeStore()
		scheduler := NewSchedulerService(store, nil)
		mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 1)

		_, err := scheduler.MoveToWaiting(ctx, "missing", "whatever")
		assert.ErrorIs(t, err, models.ErrSessionNotFound)

		// Nothing was mutated.
		ready, err := scheduler.ReadyQueue(ctx)
		require.NoError(t, err)
		assert.Len(t, ready, 1)
	})
}

func TestRescheduleSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("ReassignsWaitingSessionToDifferingSlot", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		s1 := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 5)
		mustSchedule(t, scheduler, "pr2", "pa2", slotT2, 1)
		_, err := scheduler.MoveToWaiting(ctx, s1.SessionID, "conflict")
		require.NoError(t, err)

		rescheduled, err := scheduler.RescheduleSweep(ctx)
		require.NoError(t, err)
		require.Len(t, rescheduled, 1)

		got := rescheduled[0]
		assert.Equal(t, s1.SessionID, got.SessionID)
		assert.True(t, got.TimeSlot.Equal(slotT2))
		assert.Equal(t, models.StatusScheduled, got.Status)
		assert.Empty(t, got.Reason)

		waiting, err := scheduler.WaitingQueue(ctx)
		require.NoError(t, err)
		assert.Empty(t, waiting)
	})

	t.Run("NoDifferingSlotLeavesSessionWaiting", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		s1 := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 5)
		mustSchedule(t, scheduler, "pr2", "pa2", slotT1, 1) // same slot, no donor
		_, err := scheduler.MoveToWaiting(ctx, s1.SessionID, "conflict")
		require.NoError(t, err)

		rescheduled, err := scheduler.RescheduleSweep(ctx)
		require.NoError(t, err)
		assert.Empty(t, rescheduled)

		waiting, err := scheduler.WaitingQueue(ctx)
		require.NoError(t, err)
		require.Len(t, waiting, 1)
		assert.Equal(t, models.StatusWaiting, waiting[0].Status)
		assert.Equal(t, "conflict", waiting[0].Reason)
	})

	t.Run("EmptyWaitingQueueIsNoOp", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)
		mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 1)

		rescheduled, err := scheduler.RescheduleSweep(ctx)
		require.NoError(t, err)
		assert.Empty(t, rescheduled)
	})

	t.Run("ProcessesWaitingSessionsByPriority", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		low := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 1)
		high := mustSchedule(t, scheduler, "pr2", "pa2", slotT1, 9)
		mustSchedule(t, scheduler, "pr3", "pa3", slotT2, 1)
		for _, s := range []*models.TherapySession{low, high} {
			_, err := scheduler.MoveToWaiting(ctx, s.SessionID, "conflict")
			require.NoError(t, err)
		}

		rescheduled, err := scheduler.RescheduleSweep(ctx)
		require.NoError(t, err)
		require.Len(t, rescheduled, 2)
		assert.Equal(t, high.SessionID, rescheduled[0].SessionID)
		assert.Equal(t, low.SessionID, rescheduled[1].SessionID)
	})

	t.Run("DonorStaysInPoolAndKeepsItsSlot", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)

		w1 := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 5)
		w2 := mustSchedule(t, scheduler, "pr2", "pa2", slotT1, 3)
		donor := mustSchedule(t, scheduler, "pr3", "pa3", slotT2, 1)
		for _, s := range []*models.TherapySession{w1, w2} {
			_, err := scheduler.MoveToWaiting(ctx, s.SessionID, "conflict")
			require.NoError(t, err)
		}

		rescheduled, err := scheduler.RescheduleSweep(ctx)
		require.NoError(t, err)
		require.Len(t, rescheduled, 2)

		// Both waiting sessions took the same donor slot; the donor's own
		// assignment is untouched.
		assert.True(t, rescheduled[0].TimeSlot.Equal(slotT2))
		assert.True(t, rescheduled[1].TimeSlot.Equal(slotT2))

		ready, err := scheduler.ReadyQueue(ctx)
		require.NoError(t, err)
		require.Len(t, ready, 3)
		for _, s := range ready {
			if s.SessionID == donor.SessionID {
				assert.True(t, s.TimeSlot.Equal(slotT2))
			}
		}
	})

	t.Run("ExclusiveDonorPolicyWithdrawsMatchedDonor", func(t *testing.T) {
		scheduler := NewSchedulerService(newFakeStore(), nil)
		scheduler.SetDonorPolicy(ExclusiveFirstDifferingSlot)

		w1 := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 5)
		w2 := mustSchedule(t, scheduler, "pr2", "pa2", slotT1, 3)
		mustSchedule(t, scheduler, "pr3", "pa3", slotT2, 1)
		for _, s := range []*models.TherapySession{w1, w2} {
			_, err := scheduler.MoveToWaiting(ctx, s.SessionID, "conflict")
			require.NoError(t, err)
		}

		rescheduled, err := scheduler.RescheduleSweep(ctx)
		require.NoError(t, err)
		// The single donor is consumed by the higher-priority session.
		require.Len(t, rescheduled, 1)
		assert.Equal(t, w1.SessionID, rescheduled[0].SessionID)

		waiting, err := scheduler.WaitingQueue(ctx)
		require.NoError(t, err)
		require.Len(t, waiting, 1)
		assert.Equal(t, w2.SessionID, waiting[0].SessionID)
	})

	t.Run("UpdateFailureDoesNotAbortSweep", func(t *testing.T) {
		store := newFakeStore()
		scheduler := NewSchedulerService(store, nil)

		w1 := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 5)
		w2 := mustSchedule(t, scheduler, "pr2", "pa2", slotT1, 3)
		mustSchedule(t, scheduler, "pr3", "pa3", slotT2, 1)
		for _, s := range []*models.TherapySession{w1, w2} {
			_, err := scheduler.MoveToWaiting(ctx, s.SessionID, "conflict")
			require.NoError(t, err)
		}

		boom := fmt.Errorf("connection reset")
		store.failUpdate[w1.SessionID] = boom

		rescheduled, err := scheduler.RescheduleSweep(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)

		// The second session was still rescheduled.
		require.Len(t, rescheduled, 1)
		assert.Equal(t, w2.SessionID, rescheduled[0].SessionID)
	})

	t.Run("ListFailurePropagates", func(t *testing.T) {
		store := newFakeStore()
		scheduler := NewSchedulerService(store, nil)
		store.failList = errors.New("store unavailable")

		_, err := scheduler.RescheduleSweep(ctx)
		assert.Error(t, err)
	})
}

func TestSessionIDStability(t *testing.T) {
	ctx := context.Background()
	scheduler := NewSchedulerService(newFakeStore(), nil)

	s1 := mustSchedule(t, scheduler, "pr1", "pa1", slotT1, 2)
	mustSchedule(t, scheduler, "pr2", "pa2", slotT2, 1)

	moved, err := scheduler.MoveToWaiting(ctx, s1.SessionID, "conflict")
	require.NoError(t, err)
	assert.Equal(t, s1.SessionID, moved.SessionID)

	rescheduled, err := scheduler.RescheduleSweep(ctx)
	require.NoError(t, err)
	require.Len(t, rescheduled, 1)
	assert.Equal(t, s1.SessionID, rescheduled[0].SessionID)
}
