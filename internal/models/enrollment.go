package models

import "time"

// Enrollment places one student in one school at a class level, optionally
// tied to a class arm (or legacy class) and a term. Records are soft
// history: migration deactivates, it never deletes.
type Enrollment struct {
	ID            string     `db:"id" json:"id"`
	StudentID     string     `db:"student_id" json:"student_id"`
	SchoolID      string     `db:"school_id" json:"school_id"`
	TermID        *string    `db:"term_id" json:"term_id,omitempty"`
	ClassArmID    *string    `db:"class_arm_id" json:"class_arm_id,omitempty"`
	LegacyClassID *string    `db:"legacy_class_id" json:"legacy_class_id,omitempty"`
	ClassLevel    string     `db:"class_level" json:"class_level"`
	AcademicYear  string     `db:"academic_year" json:"academic_year"`
	Active        bool       `db:"active" json:"active"`
	DebtBalance   float64    `db:"debt_balance" json:"debt_balance"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	DeactivatedAt *time.Time `db:"deactivated_at" json:"deactivated_at,omitempty"`
}

// EnrollmentDetail enriches Enrollment with the joined student identity and
// the linked arm's level, as needed by the migration sweep.
type EnrollmentDetail struct {
	Enrollment
	StudentName  string     `db:"student_name" json:"student_name"`
	StudentEmail string     `db:"student_email" json:"student_email"`
	ArmLevelID   *string    `db:"arm_level_id" json:"arm_level_id,omitempty"`
	ArmLevelType SchoolType `db:"arm_level_type" json:"arm_level_type,omitempty"`
	ArmName      *string    `db:"arm_name" json:"arm_name,omitempty"`
}

// PromotedStudent is one row of a promotion sweep's outcome, used for
// notification emails.
type PromotedStudent struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	PreviousClass string `json:"previous_class"`
	NewClass      string `json:"new_class"`
}

// GraduatedClassName is the class label reported for students whose level
// has no successor.
const GraduatedClassName = "Graduated/Alumni"

// MigrationEntry is one student's step in a migration plan: deactivate the
// old enrollment and/or create a successor. Graduation entries carry no
// Create; carry-over entries carry no DeactivateID.
type MigrationEntry struct {
	DeactivateID string
	Create       *Enrollment
}

// MigrationPlan is the full write set of one migration sweep. It is applied
// in a single transaction so a partial failure leaves no student half
// migrated.
type MigrationPlan struct {
	Entries []MigrationEntry
}
