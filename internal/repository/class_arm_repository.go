package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

// ClassArmRepository handles persistence for class arms and the legacy
// class table kept for pre-arm data.
type ClassArmRepository struct {
	db *sqlx.DB
}

// NewClassArmRepository instantiates a class arm repository.
func NewClassArmRepository(db *sqlx.DB) *ClassArmRepository {
	return &ClassArmRepository{db: db}
}

// ListActiveByLevel returns the active arms of a level for an academic
// year, ordered by name so round-robin assignment is stable.
func (r *ClassArmRepository) ListActiveByLevel(ctx context.Context, levelID, academicYear string) ([]models.ClassArm, error) {
	const query = `SELECT id, school_id, level_id, name, academic_year, capacity, active, created_at
		FROM class_arms WHERE level_id = $1 AND academic_year = $2 AND active = TRUE ORDER BY name ASC`
	var arms []models.ClassArm
	if err := r.db.SelectContext(ctx, &arms, query, levelID, academicYear); err != nil {
		return nil, fmt.Errorf("list class arms: %w", err)
	}
	return arms, nil
}

// FindLegacyByName resolves a legacy class by name. Promotion falls back to
// this when the next level has no active arms.
func (r *ClassArmRepository) FindLegacyByName(ctx context.Context, schoolID, name string) (*models.LegacyClass, error) {
	const query = `SELECT id, school_id, name FROM classes WHERE school_id = $1 AND name = $2 LIMIT 1`
	var class models.LegacyClass
	if err := r.db.GetContext(ctx, &class, query, schoolID, name); err != nil {
		return nil, err
	}
	return &class, nil
}
