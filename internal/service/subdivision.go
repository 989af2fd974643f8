package service

import (
	"time"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

// termSpan is one computed sub-period of a session.
type termSpan struct {
	Name   string
	Number int
	Start  time.Time
	End    time.Time
}

var (
	termNames     = []string{"1st Term", "2nd Term", "3rd Term"}
	semesterNames = []string{"1st Semester", "2nd Semester"}
)

// subdivideSession splits a session's date span into equal sub-periods:
// two semesters for tertiary scopes, three terms otherwise. Boundaries
// divide the millisecond span evenly; each sub-period starts one
// millisecond after the previous one ends, and the last always closes on
// the session's end date.
func subdivideSession(start, end time.Time, schoolType models.SchoolType) []termSpan {
	names := termNames
	if schoolType == models.SchoolTypeTertiary {
		names = semesterNames
	}
	parts := len(names)

	slice := end.Sub(start) / time.Duration(parts)
	spans := make([]termSpan, 0, parts)
	cursor := start
	for i := 0; i < parts; i++ {
		segEnd := cursor.Add(slice)
		if i == parts-1 {
			segEnd = end
		}
		spans = append(spans, termSpan{
			Name:   names[i],
			Number: i + 1,
			Start:  cursor,
			End:    segEnd,
		})
		cursor = segEnd.Add(time.Millisecond)
	}
	return spans
}

// monthsBetween counts full calendar months from start to end.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}
