package models

// MemberRole distinguishes school membership kinds.
type MemberRole string

const (
	MemberRoleStudent MemberRole = "STUDENT"
	MemberRoleStaff   MemberRole = "STAFF"
	MemberRoleParent  MemberRole = "PARENT"
)

// Member is anyone attached to a school who may receive lifecycle
// notifications. ClassLevel is the member's current level label when the
// member is a student; it drives school-type filtering of the audience.
type Member struct {
	ID         string     `db:"id" json:"id"`
	SchoolID   string     `db:"school_id" json:"school_id"`
	FullName   string     `db:"full_name" json:"full_name"`
	Email      string     `db:"email" json:"email"`
	Role       MemberRole `db:"role" json:"role"`
	ClassLevel string     `db:"class_level" json:"class_level"`
	Active     bool       `db:"active" json:"active"`
}
