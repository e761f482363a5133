package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"therapy-scheduler/src/db"
	"therapy-scheduler/src/models"

	"github.com/google/uuid"
)

const sessionColumns = `session_id, practitioner_id, patient_id, time_slot, status, priority, reason, created_at`

// SessionRepository handles all database operations for therapy sessions
type SessionRepository struct {
	db *db.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(database *db.DB) *SessionRepository {
	return &SessionRepository{
		db: database,
	}
}

// CreateSession inserts a new therapy session in SCHEDULED status and
// returns the persisted record. The session ID is generated here and never
// changes afterwards.
func (r *SessionRepository) CreateSession(ctx context.Context, practitionerID, patientID string, timeSlot time.Time, priority int) (*models.TherapySession, error) {
	sessionID := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO therapy_sessions
		(session_id, practitioner_id, patient_id, time_slot, status, priority, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + sessionColumns

	row := r.db.GetConnection().QueryRowContext(
		ctx,
		query,
		sessionID,
		practitionerID,
		patientID,
		timeSlot,
		models.StatusScheduled,
		priority,
		"", // reason is empty while scheduled
		now,
	)

	session, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("Created new therapy session",
		"session_id", session.SessionID,
		"practitioner_id", practitionerID,
		"patient_id", patientID)

	return session, nil
}

// GetSessionByID retrieves a session by its ID.
// Returns models.ErrSessionNotFound when no such session exists.
func (r *SessionRepository) GetSessionByID(ctx context.Context, sessionID string) (*models.TherapySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM therapy_sessions
		WHERE session_id = $1
	`

	session, err := scanSession(r.db.GetConnection().QueryRowContext(ctx, query, sessionID))
	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// ListByStatus retrieves all sessions with the given status in store order
// (created_at ascending). This is the unsorted view the reschedule sweep
// scans for slot donors.
func (r *SessionRepository) ListByStatus(ctx context.Context, status models.SessionStatus) ([]models.TherapySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM therapy_sessions
		WHERE status = $1
		ORDER BY created_at ASC
	`

	return r.querySessions(ctx, query, status)
}

// ListReadyQueue retrieves all SCHEDULED sessions ordered for serving:
// priority descending, then time_slot ascending.
func (r *SessionRepository) ListReadyQueue(ctx context.Context) ([]models.TherapySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM therapy_sessions
		WHERE status = $1
		ORDER BY priority DESC, time_slot ASC
	`

	return r.querySessions(ctx, query, models.StatusScheduled)
}

// ListWaitingQueue retrieves all WAITING sessions ordered by priority
// descending. Ties fall back to created_at ascending, the store order.
func (r *SessionRepository) ListWaitingQueue(ctx context.Context) ([]models.TherapySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM therapy_sessions
		WHERE status = $1
		ORDER BY priority DESC, created_at ASC
	`

	return r.querySessions(ctx, query, models.StatusWaiting)
}

// UpdateSession persists the mutable fields of a session (time_slot, status,
// reason). Returns models.ErrSessionNotFound when the session ID is unknown.
func (r *SessionRepository) UpdateSession(ctx context.Context, session *models.TherapySession) error {
	query := `
		UPDATE therapy_sessions
		SET time_slot = $1, status = $2, reason = $3
		WHERE session_id = $4
	`

	result, err := r.db.GetConnection().ExecContext(ctx, query,
		session.TimeSlot, session.Status, session.Reason, session.SessionID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrSessionNotFound
	}

	slog.Info("Updated therapy session",
		"session_id", session.SessionID,
		"status", session.Status)

	return nil
}

// UpdateSessionStatus updates only the status of a session. This is the
// generic store capability completion and cancellation arrive through; no
// scheduler operation calls it.
func (r *SessionRepository) UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	if !status.IsValid() {
		return models.ErrInvalidSessionStatus
	}

	query := `
		UPDATE therapy_sessions
		SET status = $1
		WHERE session_id = $2
	`

	result, err := r.db.GetConnection().ExecContext(ctx, query, status, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrSessionNotFound
	}

	slog.Info("Updated session status",
		"session_id", sessionID,
		"status", status)

	return nil
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]models.TherapySession, error) {
	rows, err := r.db.GetConnection().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.TherapySession{}
	for rows.Next() {
		var session models.TherapySession
		if err := rows.Scan(
			&session.SessionID,
			&session.PractitionerID,
			&session.PatientID,
			&session.TimeSlot,
			&session.Status,
			&session.Priority,
			&session.Reason,
			&session.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row *sql.Row) (*models.TherapySession, error) {
	var session models.TherapySession
	err := row.Scan(
		&session.SessionID,
		&session.PractitionerID,
		&session.PatientID,
		&session.TimeSlot,
		&session.Status,
		&session.Priority,
		&session.Reason,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
