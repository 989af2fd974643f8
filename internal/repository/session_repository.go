package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

const sessionColumns = "id, school_id, name, school_type, start_date, end_date, status, created_at, updated_at"

// SessionRepository handles persistence for academic sessions. Multi-step
// lifecycle writes (activation with terms, end-session cascade) run inside
// a single transaction so the one-active-per-scope invariant cannot be
// observed half applied.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository instantiates a session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// FindByID loads a session by identifier.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.AcademicSession, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_sessions WHERE id = $1", sessionColumns)
	var session models.AcademicSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActive returns the ACTIVE session for the scope, or sql.ErrNoRows.
// An empty schoolType matches any scope of the school.
func (r *SessionRepository) FindActive(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.AcademicSession, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_sessions WHERE school_id = $1 AND status = $2", sessionColumns)
	args := []interface{}{schoolID, models.StatusActive}
	if schoolType != "" {
		query += " AND school_type = $3"
		args = append(args, schoolType)
	}
	query += " LIMIT 1"

	var session models.AcademicSession
	if err := r.db.GetContext(ctx, &session, query, args...); err != nil {
		return nil, err
	}
	return &session, nil
}

// ExistsByName checks whether a session with the same name exists in scope.
func (r *SessionRepository) ExistsByName(ctx context.Context, schoolID string, schoolType models.SchoolType, name string) (bool, error) {
	query := "SELECT 1 FROM academic_sessions WHERE school_id = $1 AND name = $2"
	args := []interface{}{schoolID, name}
	if schoolType != "" {
		query += " AND school_type = $3"
		args = append(args, schoolType)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check session name: %w", err)
	}
	return true, nil
}

// Create inserts a new session record.
func (r *SessionRepository) Create(ctx context.Context, session *models.AcademicSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	const query = `INSERT INTO academic_sessions (id, school_id, name, school_type, start_date, end_date, status, created_at, updated_at)
		VALUES (:id, :school_id, :name, :school_type, :start_date, :end_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// ActivateWithTerms inserts a session together with its terms and, in the
// same transaction, completes any previously active session and term of the
// same (school, school type) scope.
func (r *SessionRepository) ActivateWithTerms(ctx context.Context, session *models.AcademicSession, terms []models.Term) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate session tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = demoteActiveInScope(ctx, tx, session.SchoolID, session.SchoolType, now); err != nil {
		return err
	}

	const insertSession = `INSERT INTO academic_sessions (id, school_id, name, school_type, start_date, end_date, status, created_at, updated_at)
		VALUES (:id, :school_id, :name, :school_type, :start_date, :end_date, :status, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insertSession, session); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	const insertTerm = `INSERT INTO terms (id, session_id, school_id, name, number, school_type, start_date, end_date, half_term_start, half_term_end, status, created_at, updated_at)
		VALUES (:id, :session_id, :school_id, :name, :number, :school_type, :start_date, :end_date, :half_term_start, :half_term_end, :status, :created_at, :updated_at)`
	for i := range terms {
		term := &terms[i]
		if term.ID == "" {
			term.ID = uuid.NewString()
		}
		term.SessionID = session.ID
		term.SchoolID = session.SchoolID
		term.SchoolType = session.SchoolType
		term.CreatedAt = now
		term.UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, insertTerm, term); err != nil {
			return fmt.Errorf("insert term %d: %w", term.Number, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit activate session tx: %w", err)
	}
	return nil
}

// CompleteCascade marks the session and every one of its terms COMPLETED,
// regardless of each term's prior status.
func (r *SessionRepository) CompleteCascade(ctx context.Context, sessionID string) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin end session tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `UPDATE terms SET status = $1, updated_at = $2 WHERE session_id = $3`,
		models.StatusCompleted, now, sessionID); err != nil {
		return fmt.Errorf("complete session terms: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE academic_sessions SET status = $1, updated_at = $2 WHERE id = $3`,
		models.StatusCompleted, now, sessionID); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit end session tx: %w", err)
	}
	return nil
}

// UpdateStatus sets a session's status.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id string, status models.RecordStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE academic_sessions SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	return nil
}

// ListBySchool returns every session of a school ordered by start date,
// newest first.
func (r *SessionRepository) ListBySchool(ctx context.Context, schoolID string, schoolType models.SchoolType) ([]models.AcademicSession, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_sessions WHERE school_id = $1", sessionColumns)
	args := []interface{}{schoolID}
	if schoolType != "" {
		query += " AND school_type = $2"
		args = append(args, schoolType)
	}
	query += " ORDER BY start_date DESC"

	var sessions []models.AcademicSession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// demoteActiveInScope completes every ACTIVE term and session of the scope.
func demoteActiveInScope(ctx context.Context, tx *sqlx.Tx, schoolID string, schoolType models.SchoolType, now time.Time) error {
	termQuery := `UPDATE terms SET status = $1, updated_at = $2 WHERE school_id = $3 AND status = $4`
	sessionQuery := `UPDATE academic_sessions SET status = $1, updated_at = $2 WHERE school_id = $3 AND status = $4`
	args := []interface{}{models.StatusCompleted, now, schoolID, models.StatusActive}
	if schoolType != "" {
		termQuery += " AND school_type = $5"
		sessionQuery += " AND school_type = $5"
		args = append(args, schoolType)
	}

	if _, err := tx.ExecContext(ctx, termQuery, args...); err != nil {
		return fmt.Errorf("demote active terms: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sessionQuery, args...); err != nil {
		return fmt.Errorf("demote active sessions: %w", err)
	}
	return nil
}
