package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
)

type migrationEnrollmentRepository interface {
	ListForMigration(ctx context.Context, schoolID, priorTermID string) ([]models.EnrollmentDetail, error)
	ExistsForStudentTerm(ctx context.Context, studentID, termID string) (bool, error)
	ApplyMigration(ctx context.Context, plan models.MigrationPlan) error
}

type migrationTermRepository interface {
	FindByID(ctx context.Context, id string) (*models.Term, error)
	FindLatestInScope(ctx context.Context, schoolID string, schoolType models.SchoolType, excludeID string) (*models.Term, error)
}

type migrationArmRepository interface {
	ListActiveByLevel(ctx context.Context, levelID, academicYear string) ([]models.ClassArm, error)
	FindLegacyByName(ctx context.Context, schoolID, name string) (*models.LegacyClass, error)
}

type chainEnsurer interface {
	EnsureChain(ctx context.Context, schoolID string, schoolType models.SchoolType) (*ProgressionChain, error)
}

// MigrationService walks active enrollments when a new term begins and
// either promotes each student to the next class level or carries the
// placement over unchanged. The sweep computes a full plan first and
// applies it through one repository transaction, so a failure leaves no
// student half migrated.
type MigrationService struct {
	enrollments migrationEnrollmentRepository
	terms       migrationTermRepository
	arms        migrationArmRepository
	progression chainEnsurer
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewMigrationService creates a migration service.
func NewMigrationService(enrollments migrationEnrollmentRepository, terms migrationTermRepository, arms migrationArmRepository, progression chainEnsurer, metrics *MetricsService, logger *zap.Logger) *MigrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationService{
		enrollments: enrollments,
		terms:       terms,
		arms:        arms,
		progression: progression,
		metrics:     metrics,
		logger:      logger,
	}
}

// Promote moves every eligible enrollment one level up the progression
// chain into the target term. Students on the terminal level graduate:
// their enrollment is deactivated and no successor is created. Returns the
// migrated count and the per-student records used for notifications.
func (s *MigrationService) Promote(ctx context.Context, schoolID string, target *models.Term, schoolType models.SchoolType) (int, []models.PromotedStudent, error) {
	chain, err := s.progression.EnsureChain(ctx, schoolID, schoolType)
	if err != nil {
		return 0, nil, err
	}

	enrollments, err := s.selectEligible(ctx, schoolID, target, "", schoolType)
	if err != nil {
		return 0, nil, err
	}

	var (
		plan      models.MigrationPlan
		promoted  []models.PromotedStudent
		graduated int
		// per-level assignment counters drive round-robin arm balancing
		assigned = make(map[string]int)
	)

	for _, enr := range enrollments {
		level := s.resolveLevel(chain, enr)
		if level == nil {
			s.logger.Warn("skipping enrollment with unresolvable class level",
				zap.String("enrollment_id", enr.ID),
				zap.String("student_id", enr.StudentID),
				zap.String("class_level", enr.ClassLevel))
			continue
		}

		next := chain.Next(level)
		if next == nil {
			// terminal rung: graduation
			plan.Entries = append(plan.Entries, models.MigrationEntry{DeactivateID: enr.ID})
			promoted = append(promoted, models.PromotedStudent{
				Email:         enr.StudentEmail,
				Name:          enr.StudentName,
				PreviousClass: level.Name,
				NewClass:      models.GraduatedClassName,
			})
			graduated++
			continue
		}

		successor := &models.Enrollment{
			StudentID:    enr.StudentID,
			SchoolID:     schoolID,
			TermID:       &target.ID,
			ClassLevel:   next.Name,
			AcademicYear: enr.AcademicYear,
			Active:       true,
			DebtBalance:  0,
		}

		arms, err := s.arms.ListActiveByLevel(ctx, next.ID, enr.AcademicYear)
		if err != nil {
			return 0, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class arms")
		}
		if len(arms) > 0 {
			arm := arms[assigned[next.ID]%len(arms)]
			successor.ClassArmID = &arm.ID
		} else if legacy, err := s.arms.FindLegacyByName(ctx, schoolID, next.Name); err == nil {
			successor.LegacyClassID = &legacy.ID
		} else if err != sql.ErrNoRows {
			s.logger.Warn("legacy class lookup failed, promoting without class reference",
				zap.String("student_id", enr.StudentID), zap.Error(err))
		}
		assigned[next.ID]++

		plan.Entries = append(plan.Entries, models.MigrationEntry{DeactivateID: enr.ID, Create: successor})
		promoted = append(promoted, models.PromotedStudent{
			Email:         enr.StudentEmail,
			Name:          enr.StudentName,
			PreviousClass: level.Name,
			NewClass:      next.Name,
		})
	}

	if err := s.enrollments.ApplyMigration(ctx, plan); err != nil {
		return 0, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply promotion sweep")
	}

	if s.metrics != nil {
		s.metrics.AddPromoted(len(promoted) - graduated)
		s.metrics.AddGraduated(graduated)
	}
	s.logger.Info("promotion sweep completed",
		zap.String("school_id", schoolID),
		zap.String("term_id", target.ID),
		zap.Int("migrated", len(promoted)),
		zap.Int("graduated", graduated))

	return len(promoted), promoted, nil
}

// CarryOver clones every eligible enrollment unchanged into the target
// term: same class placement, same level label, same academic year, debt
// balance preserved. Students who already hold an enrollment in the target
// term are skipped, which makes the sweep idempotent.
func (s *MigrationService) CarryOver(ctx context.Context, schoolID string, target *models.Term, sourceTermID string, schoolType models.SchoolType) (int, error) {
	enrollments, err := s.selectEligible(ctx, schoolID, target, sourceTermID, schoolType)
	if err != nil {
		return 0, err
	}

	var plan models.MigrationPlan
	for _, enr := range enrollments {
		exists, err := s.enrollments.ExistsForStudentTerm(ctx, enr.StudentID, target.ID)
		if err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing enrollment")
		}
		if exists {
			continue
		}

		clone := &models.Enrollment{
			StudentID:     enr.StudentID,
			SchoolID:      schoolID,
			TermID:        &target.ID,
			ClassArmID:    enr.ClassArmID,
			LegacyClassID: enr.LegacyClassID,
			ClassLevel:    enr.ClassLevel,
			AcademicYear:  enr.AcademicYear,
			Active:        true,
			DebtBalance:   enr.DebtBalance,
		}
		plan.Entries = append(plan.Entries, models.MigrationEntry{DeactivateID: enr.ID, Create: clone})
	}

	if err := s.enrollments.ApplyMigration(ctx, plan); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply carry-over sweep")
	}

	if s.metrics != nil {
		s.metrics.AddCarriedOver(len(plan.Entries))
	}
	s.logger.Info("carry-over sweep completed",
		zap.String("school_id", schoolID),
		zap.String("term_id", target.ID),
		zap.Int("migrated", len(plan.Entries)))

	return len(plan.Entries), nil
}

// selectEligible resolves the source term and returns the active
// enrollments tied to it (or tied to no term at all), filtered by the
// school-type scope.
func (s *MigrationService) selectEligible(ctx context.Context, schoolID string, target *models.Term, sourceTermID string, schoolType models.SchoolType) ([]models.EnrollmentDetail, error) {
	priorID := sourceTermID
	if priorID == "" {
		prior, err := s.terms.FindLatestInScope(ctx, schoolID, schoolType, target.ID)
		switch {
		case err == sql.ErrNoRows:
			// first-ever term: only unlinked enrollments qualify
		case err != nil:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve prior term")
		default:
			priorID = prior.ID
		}
	}

	enrollments, err := s.enrollments.ListForMigration(ctx, schoolID, priorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}

	if schoolType == "" {
		return enrollments, nil
	}
	filtered := enrollments[:0]
	for _, enr := range enrollments {
		if matchesSchoolType(schoolType, enr.ArmLevelType, enr.ClassLevel) {
			filtered = append(filtered, enr)
		}
	}
	return filtered, nil
}

// resolveLevel finds the enrollment's current class level: through the
// linked arm when present, otherwise by matching the stored level label
// against the chain. Returns nil when the data is inconsistent.
func (s *MigrationService) resolveLevel(chain *ProgressionChain, enr models.EnrollmentDetail) *models.ClassLevel {
	if enr.ArmLevelID != nil {
		if level := chain.Level(*enr.ArmLevelID); level != nil {
			return level
		}
	}
	if enr.ClassLevel != "" {
		return chain.LevelByLabel(enr.ClassLevel)
	}
	return nil
}
