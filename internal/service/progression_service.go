package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
)

type progressionLevelRepository interface {
	ListByScope(ctx context.Context, schoolID string, schoolType models.SchoolType) ([]models.ClassLevel, error)
	SetNextLevel(ctx context.Context, id, nextID string) error
}

// ProgressionChain is the explicit form of a scope's class-level ladder: a
// map from level id to level with forward links resolved. Class levels are
// created independently of the calendar subsystem, so the chain is repaired
// before every promotion sweep.
type ProgressionChain struct {
	byID    map[string]*models.ClassLevel
	byLabel map[string]*models.ClassLevel
	ordered []*models.ClassLevel
}

// Level returns the chain member with the given id, or nil.
func (c *ProgressionChain) Level(id string) *models.ClassLevel {
	return c.byID[id]
}

// LevelByLabel resolves a level by display name or code, case-insensitive.
func (c *ProgressionChain) LevelByLabel(label string) *models.ClassLevel {
	return c.byLabel[strings.ToUpper(strings.TrimSpace(label))]
}

// Next follows a level's forward pointer. Returns nil for the terminal
// level, for levels outside the chain, and for self-referencing links
// (malformed data).
func (c *ProgressionChain) Next(level *models.ClassLevel) *models.ClassLevel {
	if level == nil || level.NextLevelID == nil {
		return nil
	}
	if *level.NextLevelID == level.ID {
		return nil
	}
	return c.byID[*level.NextLevelID]
}

// Levels returns the chain members in level order.
func (c *ProgressionChain) Levels() []*models.ClassLevel {
	return c.ordered
}

// ProgressionService maintains the class-level progression chain.
type ProgressionService struct {
	levels progressionLevelRepository
	logger *zap.Logger
}

// NewProgressionService creates a progression service.
func NewProgressionService(levels progressionLevelRepository, logger *zap.Logger) *ProgressionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressionService{levels: levels, logger: logger}
}

// EnsureChain loads the scope's levels ordered by level number, fills in
// every missing forward pointer (level[i] -> level[i+1]) and persists each
// repair. Idempotent; safe to call before every migration run.
func (s *ProgressionService) EnsureChain(ctx context.Context, schoolID string, schoolType models.SchoolType) (*ProgressionChain, error) {
	levels, err := s.levels.ListByScope(ctx, schoolID, schoolType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class levels")
	}

	for i := range levels {
		if i == len(levels)-1 {
			break
		}
		if levels[i].NextLevelID != nil {
			continue
		}
		nextID := levels[i+1].ID
		if err := s.levels.SetNextLevel(ctx, levels[i].ID, nextID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to repair progression link")
		}
		levels[i].NextLevelID = &nextID
		s.logger.Info("repaired progression link",
			zap.String("school_id", schoolID),
			zap.String("level", levels[i].Name),
			zap.String("next_level_id", nextID))
	}

	chain := &ProgressionChain{
		byID:    make(map[string]*models.ClassLevel, len(levels)),
		byLabel: make(map[string]*models.ClassLevel, len(levels)),
		ordered: make([]*models.ClassLevel, 0, len(levels)),
	}
	for i := range levels {
		level := &levels[i]
		chain.byID[level.ID] = level
		chain.byLabel[strings.ToUpper(level.Name)] = level
		if level.Code != "" {
			chain.byLabel[strings.ToUpper(level.Code)] = level
		}
		chain.ordered = append(chain.ordered, level)
	}

	s.checkForCycle(schoolID, chain)
	return chain, nil
}

// checkForCycle walks the chain from its head and logs when links revisit
// a level. Malformed links degrade Next lookups, they never abort a sweep.
func (s *ProgressionService) checkForCycle(schoolID string, chain *ProgressionChain) {
	if len(chain.ordered) == 0 {
		return
	}
	seen := make(map[string]bool, len(chain.ordered))
	node := chain.ordered[0]
	for node != nil {
		if seen[node.ID] {
			s.logger.Warn("progression chain contains a cycle",
				zap.String("school_id", schoolID),
				zap.String("level", node.Name))
			return
		}
		seen[node.ID] = true
		node = chain.Next(node)
	}
}
