package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

const classLevelColumns = "id, school_id, name, code, school_type, level_order, next_level_id, created_at, updated_at"

// ClassLevelRepository handles persistence for class levels.
type ClassLevelRepository struct {
	db *sqlx.DB
}

// NewClassLevelRepository instantiates a class level repository.
func NewClassLevelRepository(db *sqlx.DB) *ClassLevelRepository {
	return &ClassLevelRepository{db: db}
}

// ListByScope returns the levels of a scope ordered by level_order.
func (r *ClassLevelRepository) ListByScope(ctx context.Context, schoolID string, schoolType models.SchoolType) ([]models.ClassLevel, error) {
	query := fmt.Sprintf("SELECT %s FROM class_levels WHERE school_id = $1", classLevelColumns)
	args := []interface{}{schoolID}
	if schoolType != "" {
		query += " AND school_type = $2"
		args = append(args, schoolType)
	}
	query += " ORDER BY level_order ASC"

	var levels []models.ClassLevel
	if err := r.db.SelectContext(ctx, &levels, query, args...); err != nil {
		return nil, fmt.Errorf("list class levels: %w", err)
	}
	return levels, nil
}

// FindByNameOrCode resolves a level by its display name or short code.
func (r *ClassLevelRepository) FindByNameOrCode(ctx context.Context, schoolID, nameOrCode string) (*models.ClassLevel, error) {
	query := fmt.Sprintf("SELECT %s FROM class_levels WHERE school_id = $1 AND (name = $2 OR code = $2) LIMIT 1", classLevelColumns)
	var level models.ClassLevel
	if err := r.db.GetContext(ctx, &level, query, schoolID, nameOrCode); err != nil {
		return nil, err
	}
	return &level, nil
}

// SetNextLevel persists a progression link repair.
func (r *ClassLevelRepository) SetNextLevel(ctx context.Context, id, nextID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE class_levels SET next_level_id = $1, updated_at = $2 WHERE id = $3`,
		nextID, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("set next level: %w", err)
	}
	return nil
}
