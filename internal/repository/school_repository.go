package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

// SchoolRepository handles lookups of tenant schools.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository instantiates a school repository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// FindByIDOrSubdomain resolves a school by primary key or subdomain.
func (r *SchoolRepository) FindByIDOrSubdomain(ctx context.Context, identifier string) (*models.School, error) {
	const query = `SELECT id, name, subdomain, address, active, created_at, updated_at
		FROM schools WHERE id = $1 OR subdomain = $1 LIMIT 1`
	var school models.School
	if err := r.db.GetContext(ctx, &school, query, identifier); err != nil {
		return nil, err
	}
	return &school, nil
}
