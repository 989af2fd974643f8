package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
)

type timetableRepository interface {
	ListByTerm(ctx context.Context, termID string) ([]models.TimetablePeriod, error)
	SlotTaken(ctx context.Context, termID, classArmID string, dayOfWeek int, startTime string) (bool, error)
	Create(ctx context.Context, period *models.TimetablePeriod) error
}

// TimetableService copies scheduled periods from one term into the next.
type TimetableService struct {
	repo   timetableRepository
	logger *zap.Logger
}

// NewTimetableService creates a timetable service.
func NewTimetableService(repo timetableRepository, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, logger: logger}
}

// CloneForTerm copies every period of the previous term into the new one,
// skipping slots the new term already occupies. Idempotent: a second run
// clones nothing. Returns the number of periods cloned.
func (s *TimetableService) CloneForTerm(ctx context.Context, prevTermID, newTermID string) (int, error) {
	periods, err := s.repo.ListByTerm(ctx, prevTermID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}

	cloned := 0
	for _, period := range periods {
		taken, err := s.repo.SlotTaken(ctx, newTermID, period.ClassArmID, period.DayOfWeek, period.StartTime)
		if err != nil {
			return cloned, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check timetable slot")
		}
		if taken {
			continue
		}

		clone := period
		clone.ID = ""
		clone.TermID = newTermID
		if err := s.repo.Create(ctx, &clone); err != nil {
			return cloned, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clone timetable period")
		}
		cloned++
	}

	if cloned > 0 {
		s.logger.Info("timetable cloned",
			zap.String("from_term", prevTermID),
			zap.String("to_term", newTermID),
			zap.Int("periods", cloned))
	}
	return cloned, nil
}
