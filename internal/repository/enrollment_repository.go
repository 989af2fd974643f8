package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

const enrollmentColumns = "id, student_id, school_id, term_id, class_arm_id, legacy_class_id, class_level, academic_year, active, debt_balance, created_at, updated_at, deactivated_at"

// EnrollmentRepository handles persistence for enrollments. A migration
// sweep's write set is applied through ApplyMigration in one transaction;
// a partial failure rolls back every entry.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository instantiates an enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListForMigration selects every active enrollment whose term is the prior
// term or which has no term at all (legacy unlinked data), joined with the
// student identity and the linked arm's level.
func (r *EnrollmentRepository) ListForMigration(ctx context.Context, schoolID, priorTermID string) ([]models.EnrollmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s,
			m.full_name AS student_name, m.email AS student_email,
			a.level_id AS arm_level_id, COALESCE(l.school_type, '') AS arm_level_type, a.name AS arm_name
		FROM enrollments e
		JOIN members m ON m.id = e.student_id
		LEFT JOIN class_arms a ON a.id = e.class_arm_id
		LEFT JOIN class_levels l ON l.id = a.level_id
		WHERE e.school_id = $1 AND e.active = TRUE`, prefixColumns("e", enrollmentColumns))
	args := []interface{}{schoolID}
	if priorTermID != "" {
		query += " AND (e.term_id = $2 OR e.term_id IS NULL)"
		args = append(args, priorTermID)
	} else {
		query += " AND e.term_id IS NULL"
	}
	query += " ORDER BY m.full_name ASC"

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments for migration: %w", err)
	}
	return enrollments, nil
}

// ExistsForStudentTerm reports whether the student already has an
// enrollment in the target term. Guards carry-over idempotence.
func (r *EnrollmentRepository) ExistsForStudentTerm(ctx context.Context, studentID, termID string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM enrollments WHERE student_id = $1 AND term_id = $2 LIMIT 1`, studentID, termID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment for term: %w", err)
	}
	return true, nil
}

// Create inserts a new enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	prepareEnrollment(enrollment)
	if _, err := r.db.NamedExecContext(ctx, insertEnrollmentQuery, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Deactivate soft-closes an enrollment. The record is retained as history.
func (r *EnrollmentRepository) Deactivate(ctx context.Context, id string) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, `UPDATE enrollments SET active = FALSE, deactivated_at = $1, updated_at = $1 WHERE id = $2`,
		now, id); err != nil {
		return fmt.Errorf("deactivate enrollment: %w", err)
	}
	return nil
}

// ApplyMigration writes an entire migration plan in a single transaction:
// for each entry, the old enrollment is deactivated and/or the successor is
// inserted. All-or-nothing.
func (r *EnrollmentRepository) ApplyMigration(ctx context.Context, plan models.MigrationPlan) error {
	if len(plan.Entries) == 0 {
		return nil
	}
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, entry := range plan.Entries {
		if entry.DeactivateID != "" {
			if _, err = tx.ExecContext(ctx, `UPDATE enrollments SET active = FALSE, deactivated_at = $1, updated_at = $1 WHERE id = $2`,
				now, entry.DeactivateID); err != nil {
				return fmt.Errorf("deactivate enrollment %s: %w", entry.DeactivateID, err)
			}
		}
		if entry.Create != nil {
			prepareEnrollment(entry.Create)
			if _, err = tx.NamedExecContext(ctx, insertEnrollmentQuery, entry.Create); err != nil {
				return fmt.Errorf("insert enrollment for student %s: %w", entry.Create.StudentID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration tx: %w", err)
	}
	return nil
}

const insertEnrollmentQuery = `INSERT INTO enrollments (id, student_id, school_id, term_id, class_arm_id, legacy_class_id, class_level, academic_year, active, debt_balance, created_at, updated_at, deactivated_at)
	VALUES (:id, :student_id, :school_id, :term_id, :class_arm_id, :legacy_class_id, :class_level, :academic_year, :active, :debt_balance, :created_at, :updated_at, :deactivated_at)`

func prepareEnrollment(enrollment *models.Enrollment) {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	cols := strings.Split(columns, ",")
	for i, col := range cols {
		cols[i] = alias + "." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}
