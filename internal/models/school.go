package models

import "time"

// SchoolType classifies a school or a scope within a school. An empty
// value means the scope is not typed.
type SchoolType string

const (
	SchoolTypePrimary   SchoolType = "PRIMARY"
	SchoolTypeSecondary SchoolType = "SECONDARY"
	SchoolTypeTertiary  SchoolType = "TERTIARY"
)

// School represents a tenant institution on the platform.
type School struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Subdomain string    `db:"subdomain" json:"subdomain"`
	Address   string    `db:"address" json:"address"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
