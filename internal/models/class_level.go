package models

import "time"

// ClassLevel is one rung of a school's academic ladder. Levels form a
// singly linked chain through NextLevelID; a nil link marks the terminal
// (graduating) level.
type ClassLevel struct {
	ID          string     `db:"id" json:"id"`
	SchoolID    string     `db:"school_id" json:"school_id"`
	Name        string     `db:"name" json:"name"`
	Code        string     `db:"code" json:"code"`
	SchoolType  SchoolType `db:"school_type" json:"school_type,omitempty"`
	LevelOrder  int        `db:"level_order" json:"level_order"`
	NextLevelID *string    `db:"next_level_id" json:"next_level_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ClassArm is a concrete section of a class level for one academic year.
type ClassArm struct {
	ID           string    `db:"id" json:"id"`
	SchoolID     string    `db:"school_id" json:"school_id"`
	LevelID      string    `db:"level_id" json:"level_id"`
	Name         string    `db:"name" json:"name"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Capacity     int       `db:"capacity" json:"capacity"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// LegacyClass is the pre-arm class entity kept for schools whose data was
// imported before class arms existed. Promotion falls back to it when a
// next level has no active arms.
type LegacyClass struct {
	ID       string `db:"id" json:"id"`
	SchoolID string `db:"school_id" json:"school_id"`
	Name     string `db:"name" json:"name"`
}
