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

// TimetableRepository handles persistence for scheduled periods.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository instantiates a timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// ListByTerm returns every period scheduled in a term.
func (r *TimetableRepository) ListByTerm(ctx context.Context, termID string) ([]models.TimetablePeriod, error) {
	const query = `SELECT id, school_id, term_id, class_arm_id, day_of_week, start_time, end_time, subject, teacher_name, created_at
		FROM timetable_periods WHERE term_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var periods []models.TimetablePeriod
	if err := r.db.SelectContext(ctx, &periods, query, termID); err != nil {
		return nil, fmt.Errorf("list timetable periods: %w", err)
	}
	return periods, nil
}

// SlotTaken reports whether the term already has a period occupying the
// (class arm, day, start time) slot.
func (r *TimetableRepository) SlotTaken(ctx context.Context, termID, classArmID string, dayOfWeek int, startTime string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists,
		`SELECT 1 FROM timetable_periods WHERE term_id = $1 AND class_arm_id = $2 AND day_of_week = $3 AND start_time = $4 LIMIT 1`,
		termID, classArmID, dayOfWeek, startTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check timetable slot: %w", err)
	}
	return true, nil
}

// Create inserts a new period.
func (r *TimetableRepository) Create(ctx context.Context, period *models.TimetablePeriod) error {
	if period.ID == "" {
		period.ID = uuid.NewString()
	}
	if period.CreatedAt.IsZero() {
		period.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO timetable_periods (id, school_id, term_id, class_arm_id, day_of_week, start_time, end_time, subject, teacher_name, created_at)
		VALUES (:id, :school_id, :term_id, :class_arm_id, :day_of_week, :start_time, :end_time, :subject, :teacher_name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, period); err != nil {
		return fmt.Errorf("create timetable period: %w", err)
	}
	return nil
}
