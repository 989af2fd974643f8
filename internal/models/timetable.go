package models

import "time"

// TimetablePeriod is one scheduled teaching slot within a term. The tuple
// (class arm, day of week, start time) identifies a slot for conflict
// checks when cloning into a new term.
type TimetablePeriod struct {
	ID          string    `db:"id" json:"id"`
	SchoolID    string    `db:"school_id" json:"school_id"`
	TermID      string    `db:"term_id" json:"term_id"`
	ClassArmID  string    `db:"class_arm_id" json:"class_arm_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Subject     string    `db:"subject" json:"subject"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
