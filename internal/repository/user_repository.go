package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

// UserRepository handles persistence for application users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository instantiates a user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail loads a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, school_id, email, password_hash, full_name, role, active, last_login, created_at, updated_at
		FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin records a successful login timestamp.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $1, updated_at = $1 WHERE id = $2`,
		now, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
