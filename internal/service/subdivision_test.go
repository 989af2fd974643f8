package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

func TestSubdivideSessionThreeTerms(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	spans := subdivideSession(start, end, models.SchoolTypeSecondary)
	require.Len(t, spans, 3)

	assert.Equal(t, "1st Term", spans[0].Name)
	assert.Equal(t, "2nd Term", spans[1].Name)
	assert.Equal(t, "3rd Term", spans[2].Name)
	assert.Equal(t, 1, spans[0].Number)
	assert.Equal(t, 3, spans[2].Number)

	assert.True(t, spans[0].Start.Equal(start))
	assert.True(t, spans[2].End.Equal(end))

	for i := 0; i < len(spans)-1; i++ {
		assert.True(t, spans[i+1].Start.Equal(spans[i].End.Add(time.Millisecond)),
			"span %d must start one millisecond after span %d ends", i+1, i)
		assert.True(t, spans[i].Start.Before(spans[i].End))
	}
}

func TestSubdivideSessionTertiarySemesters(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	spans := subdivideSession(start, end, models.SchoolTypeTertiary)
	require.Len(t, spans, 2)

	assert.Equal(t, "1st Semester", spans[0].Name)
	assert.Equal(t, "2nd Semester", spans[1].Name)
	assert.True(t, spans[0].Start.Equal(start))
	assert.True(t, spans[1].End.Equal(end))
	assert.True(t, spans[1].Start.Equal(spans[0].End.Add(time.Millisecond)))
}

func TestSubdivideSessionEvenSplit(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 300)

	spans := subdivideSession(start, end, models.SchoolTypePrimary)
	require.Len(t, spans, 3)

	slice := end.Sub(start) / 3
	assert.Equal(t, slice, spans[0].End.Sub(spans[0].Start))
	assert.Equal(t, slice, spans[1].End.Sub(spans[1].Start))
}

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "academic year",
			start: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
			want:  10,
		},
		{
			name:  "full calendar year",
			start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  12,
		},
		{
			name:  "day correction",
			start: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC),
			want:  9,
		},
		{
			name:  "same month",
			start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, monthsBetween(tc.start, tc.end))
		})
	}
}
