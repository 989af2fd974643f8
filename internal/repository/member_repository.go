package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

// MemberRepository handles lookups of school members for notification
// audiences.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository instantiates a member repository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// ListNotifiable returns every active member of the school with an email
// address. School-type filtering happens in the service layer because it
// relies on the class-name inference shim.
func (r *MemberRepository) ListNotifiable(ctx context.Context, schoolID string) ([]models.Member, error) {
	const query = `SELECT id, school_id, full_name, email, role, class_level, active
		FROM members WHERE school_id = $1 AND active = TRUE AND email <> '' ORDER BY full_name ASC`
	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, query, schoolID); err != nil {
		return nil, fmt.Errorf("list notifiable members: %w", err)
	}
	return members, nil
}
