package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

type mockTimetableRepo struct {
	periods map[string][]models.TimetablePeriod
	created []models.TimetablePeriod
}

func (m *mockTimetableRepo) ListByTerm(ctx context.Context, termID string) ([]models.TimetablePeriod, error) {
	return m.periods[termID], nil
}

func (m *mockTimetableRepo) SlotTaken(ctx context.Context, termID, classArmID string, dayOfWeek int, startTime string) (bool, error) {
	for _, p := range m.periods[termID] {
		if p.ClassArmID == classArmID && p.DayOfWeek == dayOfWeek && p.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimetableRepo) Create(ctx context.Context, period *models.TimetablePeriod) error {
	m.created = append(m.created, *period)
	m.periods[period.TermID] = append(m.periods[period.TermID], *period)
	return nil
}

func TestCloneForTermCopiesAllPeriods(t *testing.T) {
	repo := &mockTimetableRepo{periods: map[string][]models.TimetablePeriod{
		"old": {
			{ID: "p1", TermID: "old", ClassArmID: "arm-a", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", Subject: "Mathematics"},
			{ID: "p2", TermID: "old", ClassArmID: "arm-a", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", Subject: "English"},
		},
	}}
	svc := NewTimetableService(repo, zap.NewNop())

	cloned, err := svc.CloneForTerm(context.Background(), "old", "new")
	require.NoError(t, err)
	assert.Equal(t, 2, cloned)

	require.Len(t, repo.created, 2)
	for _, p := range repo.created {
		assert.Equal(t, "new", p.TermID)
		assert.Empty(t, p.ID)
	}
	assert.Equal(t, "Mathematics", repo.created[0].Subject)
}

func TestCloneForTermSkipsOccupiedSlots(t *testing.T) {
	repo := &mockTimetableRepo{periods: map[string][]models.TimetablePeriod{
		"old": {
			{ID: "p1", TermID: "old", ClassArmID: "arm-a", DayOfWeek: 1, StartTime: "08:00"},
			{ID: "p2", TermID: "old", ClassArmID: "arm-a", DayOfWeek: 2, StartTime: "08:00"},
		},
		"new": {
			{ID: "p3", TermID: "new", ClassArmID: "arm-a", DayOfWeek: 1, StartTime: "08:00"},
		},
	}}
	svc := NewTimetableService(repo, zap.NewNop())

	cloned, err := svc.CloneForTerm(context.Background(), "old", "new")
	require.NoError(t, err)
	assert.Equal(t, 1, cloned)
	assert.Equal(t, 2, repo.created[0].DayOfWeek)
}

func TestCloneForTermIdempotent(t *testing.T) {
	repo := &mockTimetableRepo{periods: map[string][]models.TimetablePeriod{
		"old": {
			{ID: "p1", TermID: "old", ClassArmID: "arm-a", DayOfWeek: 1, StartTime: "08:00"},
		},
	}}
	svc := NewTimetableService(repo, zap.NewNop())

	first, err := svc.CloneForTerm(context.Background(), "old", "new")
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := svc.CloneForTerm(context.Background(), "old", "new")
	require.NoError(t, err)
	assert.Zero(t, second)
}
