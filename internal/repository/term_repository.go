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

const termColumns = "id, session_id, school_id, name, number, school_type, start_date, end_date, half_term_start, half_term_end, status, created_at, updated_at"

// TermRepository handles persistence for terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// FindByID loads a term by identifier.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE id = $1", termColumns)
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// FindActive returns the ACTIVE term for the scope, or sql.ErrNoRows.
func (r *TermRepository) FindActive(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE school_id = $1 AND status = $2", termColumns)
	args := []interface{}{schoolID, models.StatusActive}
	if schoolType != "" {
		query += " AND school_type = $3"
		args = append(args, schoolType)
	}
	query += " LIMIT 1"

	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, args...); err != nil {
		return nil, err
	}
	return &term, nil
}

// FindLatestInScope resolves the most recent ACTIVE or COMPLETED term of
// the scope, ordered by parent session start date then term number,
// excluding the given term. Returns sql.ErrNoRows when the school has no
// prior term.
func (r *TermRepository) FindLatestInScope(ctx context.Context, schoolID string, schoolType models.SchoolType, excludeID string) (*models.Term, error) {
	query := fmt.Sprintf(`SELECT %s FROM (
		SELECT t.*, s.start_date AS session_start FROM terms t
		JOIN academic_sessions s ON s.id = t.session_id
		WHERE t.school_id = $1 AND t.status IN ($2, $3) AND t.id <> $4`, termColumns)
	args := []interface{}{schoolID, models.StatusActive, models.StatusCompleted, excludeID}
	if schoolType != "" {
		query += " AND t.school_type = $5"
		args = append(args, schoolType)
	}
	query += ` ORDER BY s.start_date DESC, t.number DESC LIMIT 1) t`

	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, args...); err != nil {
		return nil, err
	}
	return &term, nil
}

// ExistsByNumber checks whether the session already has a term with the
// given ordinal number.
func (r *TermRepository) ExistsByNumber(ctx context.Context, sessionID string, number int) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM terms WHERE session_id = $1 AND number = $2 LIMIT 1`, sessionID, number)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check term number: %w", err)
	}
	return true, nil
}

// Create inserts a new term record.
func (r *TermRepository) Create(ctx context.Context, term *models.Term) error {
	if term.ID == "" {
		term.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if term.CreatedAt.IsZero() {
		term.CreatedAt = now
	}
	term.UpdatedAt = now

	const query = `INSERT INTO terms (id, session_id, school_id, name, number, school_type, start_date, end_date, half_term_start, half_term_end, status, created_at, updated_at)
		VALUES (:id, :session_id, :school_id, :name, :number, :school_type, :start_date, :end_date, :half_term_start, :half_term_end, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, term); err != nil {
		return fmt.Errorf("create term: %w", err)
	}
	return nil
}

// UpdateStatus sets a term's status.
func (r *TermRepository) UpdateStatus(ctx context.Context, id string, status models.RecordStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE terms SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update term status: %w", err)
	}
	return nil
}

// ActivateExclusive marks the target term ACTIVE, completes every other
// ACTIVE term of the same (school, school type) scope, and forces the
// parent session back to ACTIVE, all in one transaction.
func (r *TermRepository) ActivateExclusive(ctx context.Context, term *models.Term) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate term tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	demote := `UPDATE terms SET status = $1, updated_at = $2 WHERE school_id = $3 AND status = $4 AND id <> $5`
	args := []interface{}{models.StatusCompleted, now, term.SchoolID, models.StatusActive, term.ID}
	if term.SchoolType != "" {
		demote += " AND school_type = $6"
		args = append(args, term.SchoolType)
	}
	if _, err = tx.ExecContext(ctx, demote, args...); err != nil {
		return fmt.Errorf("demote other terms: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE terms SET status = $1, updated_at = $2 WHERE id = $3`,
		models.StatusActive, now, term.ID); err != nil {
		return fmt.Errorf("activate term: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE academic_sessions SET status = $1, updated_at = $2 WHERE id = $3`,
		models.StatusActive, now, term.SessionID); err != nil {
		return fmt.Errorf("reactivate session: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit activate term tx: %w", err)
	}
	return nil
}

// ListBySession returns all terms of a session ordered by number.
func (r *TermRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE session_id = $1 ORDER BY number ASC", termColumns)
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query, sessionID); err != nil {
		return nil, fmt.Errorf("list session terms: %w", err)
	}
	return terms, nil
}
