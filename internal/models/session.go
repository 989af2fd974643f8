package models

import "time"

// RecordStatus is the lifecycle status shared by academic sessions and terms.
type RecordStatus string

const (
	StatusDraft     RecordStatus = "DRAFT"
	StatusActive    RecordStatus = "ACTIVE"
	StatusCompleted RecordStatus = "COMPLETED"
	StatusArchived  RecordStatus = "ARCHIVED"
)

// AcademicSession is a school-year-scoped period owned by one school, at
// most one ACTIVE per (school, school type).
type AcademicSession struct {
	ID         string       `db:"id" json:"id"`
	SchoolID   string       `db:"school_id" json:"school_id"`
	Name       string       `db:"name" json:"name"`
	SchoolType SchoolType   `db:"school_type" json:"school_type,omitempty"`
	StartDate  time.Time    `db:"start_date" json:"start_date"`
	EndDate    time.Time    `db:"end_date" json:"end_date"`
	Status     RecordStatus `db:"status" json:"status"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// Term is a numbered sub-period of a session. Its date range lies within
// the parent session's span.
type Term struct {
	ID            string       `db:"id" json:"id"`
	SessionID     string       `db:"session_id" json:"session_id"`
	SchoolID      string       `db:"school_id" json:"school_id"`
	Name          string       `db:"name" json:"name"`
	Number        int          `db:"number" json:"number"`
	SchoolType    SchoolType   `db:"school_type" json:"school_type,omitempty"`
	StartDate     time.Time    `db:"start_date" json:"start_date"`
	EndDate       time.Time    `db:"end_date" json:"end_date"`
	HalfTermStart *time.Time   `db:"half_term_start" json:"half_term_start,omitempty"`
	HalfTermEnd   *time.Time   `db:"half_term_end" json:"half_term_end,omitempty"`
	Status        RecordStatus `db:"status" json:"status"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// SessionDetail bundles a session with its terms for list responses.
type SessionDetail struct {
	AcademicSession
	Terms []Term `json:"terms"`
}
