package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

type mockLevelRepo struct {
	levels   []models.ClassLevel
	repaired map[string]string
}

func (m *mockLevelRepo) ListByScope(ctx context.Context, schoolID string, schoolType models.SchoolType) ([]models.ClassLevel, error) {
	out := make([]models.ClassLevel, len(m.levels))
	copy(out, m.levels)
	return out, nil
}

func (m *mockLevelRepo) SetNextLevel(ctx context.Context, id, nextID string) error {
	if m.repaired == nil {
		m.repaired = make(map[string]string)
	}
	m.repaired[id] = nextID
	return nil
}

func strPtr(s string) *string { return &s }

func ladder() []models.ClassLevel {
	return []models.ClassLevel{
		{ID: "l1", Name: "JSS 1", Code: "JSS1", LevelOrder: 1},
		{ID: "l2", Name: "JSS 2", Code: "JSS2", LevelOrder: 2},
		{ID: "l3", Name: "JSS 3", Code: "JSS3", LevelOrder: 3},
	}
}

func TestEnsureChainRepairsMissingLinks(t *testing.T) {
	repo := &mockLevelRepo{levels: ladder()}
	svc := NewProgressionService(repo, zap.NewNop())

	chain, err := svc.EnsureChain(context.Background(), "sch-1", models.SchoolTypeSecondary)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"l1": "l2", "l2": "l3"}, repo.repaired)

	first := chain.Level("l1")
	require.NotNil(t, first)
	second := chain.Next(first)
	require.NotNil(t, second)
	assert.Equal(t, "JSS 2", second.Name)

	terminal := chain.Level("l3")
	assert.Nil(t, chain.Next(terminal))
}

func TestEnsureChainKeepsExistingLinks(t *testing.T) {
	levels := ladder()
	levels[0].NextLevelID = strPtr("l3")
	repo := &mockLevelRepo{levels: levels}
	svc := NewProgressionService(repo, zap.NewNop())

	chain, err := svc.EnsureChain(context.Background(), "sch-1", "")
	require.NoError(t, err)

	// the pre-existing link is respected, only the gap is filled
	assert.Equal(t, map[string]string{"l2": "l3"}, repo.repaired)
	assert.Equal(t, "l3", *chain.Level("l1").NextLevelID)
}

func TestChainLevelByLabel(t *testing.T) {
	repo := &mockLevelRepo{levels: ladder()}
	svc := NewProgressionService(repo, zap.NewNop())

	chain, err := svc.EnsureChain(context.Background(), "sch-1", "")
	require.NoError(t, err)

	assert.Equal(t, "l2", chain.LevelByLabel("jss 2").ID)
	assert.Equal(t, "l2", chain.LevelByLabel("JSS2").ID)
	assert.Nil(t, chain.LevelByLabel("SS 1"))
}

func TestChainNextIgnoresSelfLink(t *testing.T) {
	levels := []models.ClassLevel{
		{ID: "l1", Name: "JSS 1", LevelOrder: 1, NextLevelID: strPtr("l1")},
	}
	repo := &mockLevelRepo{levels: levels}
	svc := NewProgressionService(repo, zap.NewNop())

	chain, err := svc.EnsureChain(context.Background(), "sch-1", "")
	require.NoError(t, err)
	assert.Nil(t, chain.Next(chain.Level("l1")))
}

func TestEnsureChainEmptyScope(t *testing.T) {
	repo := &mockLevelRepo{}
	svc := NewProgressionService(repo, zap.NewNop())

	chain, err := svc.EnsureChain(context.Background(), "sch-1", "")
	require.NoError(t, err)
	assert.Empty(t, chain.Levels())
	assert.Empty(t, repo.repaired)
}
