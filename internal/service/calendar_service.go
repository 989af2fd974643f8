package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/clock"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
)

// Session duration floor: a session is rejected only when it is shorter
// than both thresholds. The double metric mirrors the long-standing
// behaviour of the platform and is deliberately preserved.
const (
	minSessionMonths = 10
	minSessionDays   = 300
)

type sessionRepository interface {
	FindByID(ctx context.Context, id string) (*models.AcademicSession, error)
	FindActive(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.AcademicSession, error)
	ExistsByName(ctx context.Context, schoolID string, schoolType models.SchoolType, name string) (bool, error)
	Create(ctx context.Context, session *models.AcademicSession) error
	ActivateWithTerms(ctx context.Context, session *models.AcademicSession, terms []models.Term) error
	CompleteCascade(ctx context.Context, sessionID string) error
	ListBySchool(ctx context.Context, schoolID string, schoolType models.SchoolType) ([]models.AcademicSession, error)
}

type termLifecycleRepository interface {
	FindByID(ctx context.Context, id string) (*models.Term, error)
	FindActive(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.Term, error)
	ExistsByNumber(ctx context.Context, sessionID string, number int) (bool, error)
	Create(ctx context.Context, term *models.Term) error
	UpdateStatus(ctx context.Context, id string, status models.RecordStatus) error
	ActivateExclusive(ctx context.Context, term *models.Term) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Term, error)
}

type studentMigrator interface {
	Promote(ctx context.Context, schoolID string, target *models.Term, schoolType models.SchoolType) (int, []models.PromotedStudent, error)
	CarryOver(ctx context.Context, schoolID string, target *models.Term, sourceTermID string, schoolType models.SchoolType) (int, error)
}

type timetableCloner interface {
	CloneForTerm(ctx context.Context, prevTermID, newTermID string) (int, error)
}

type transitionNotifier interface {
	NotifyTermStarted(schoolID, sessionName, termName string, schoolType models.SchoolType)
	NotifyPromotions(schoolID, termName string, students []models.PromotedStudent)
}

type calendarCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// StartTermIntent selects the transition performed by StartNewTerm.
type StartTermIntent string

const (
	IntentNewSession StartTermIntent = "NEW_SESSION"
	IntentNewTerm    StartTermIntent = "NEW_TERM"
)

// InitializeSessionRequest describes payload for creating a draft session.
type InitializeSessionRequest struct {
	Name       string            `json:"name" validate:"required"`
	StartDate  time.Time         `json:"start_date" validate:"required"`
	EndDate    time.Time         `json:"end_date" validate:"required"`
	SchoolType models.SchoolType `json:"school_type" validate:"omitempty,oneof=PRIMARY SECONDARY TERTIARY"`
}

// CreateTermRequest describes payload for adding a draft term to a session.
type CreateTermRequest struct {
	Name          string     `json:"name" validate:"required"`
	Number        int        `json:"number" validate:"required,min=1,max=3"`
	StartDate     time.Time  `json:"start_date" validate:"required"`
	EndDate       time.Time  `json:"end_date" validate:"required"`
	HalfTermStart *time.Time `json:"half_term_start"`
	HalfTermEnd   *time.Time `json:"half_term_end"`
}

// StartTermRequest triggers a NEW_SESSION or NEW_TERM transition.
type StartTermRequest struct {
	Intent     StartTermIntent   `json:"intent" validate:"required,oneof=NEW_SESSION NEW_TERM"`
	Name       string            `json:"name"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	SchoolType models.SchoolType `json:"school_type" validate:"omitempty,oneof=PRIMARY SECONDARY TERTIARY"`
	TermID     string            `json:"term_id"`
}

// StartTermResult is the outcome of a StartNewTerm transition.
type StartTermResult struct {
	Session       *models.AcademicSession `json:"session"`
	Term          *models.Term            `json:"term"`
	MigratedCount int                     `json:"migrated_count"`
}

// MigrateStudentsRequest runs a standalone migration sweep into a term.
type MigrateStudentsRequest struct {
	TermID       string            `json:"term_id" validate:"required"`
	CarryOver    bool              `json:"carry_over"`
	SourceTermID string            `json:"source_term_id"`
	SchoolType   models.SchoolType `json:"school_type" validate:"omitempty,oneof=PRIMARY SECONDARY TERTIARY"`
}

// MigrationSummary reports a standalone sweep's outcome.
type MigrationSummary struct {
	MigratedCount int `json:"migrated_count"`
}

// CalendarService owns the session/term lifecycle: it enforces the
// one-active-per-scope invariants, generates term subdivisions, and
// orchestrates migration, timetable cloning and notifications when a new
// term begins.
type CalendarService struct {
	sessions  sessionRepository
	terms     termLifecycleRepository
	migrator  studentMigrator
	cloner    timetableCloner
	notifier  transitionNotifier
	cache     calendarCache
	metrics   *MetricsService
	clk       clock.Clock
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewCalendarService creates a calendar service. cache, notifier and
// metrics may be nil; the service degrades gracefully without them.
func NewCalendarService(sessions sessionRepository, terms termLifecycleRepository, migrator studentMigrator, cloner timetableCloner, notifier transitionNotifier, cache calendarCache, metrics *MetricsService, clk clock.Clock, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *CalendarService {
	if clk == nil {
		clk = clock.System{}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		sessions:  sessions,
		terms:     terms,
		migrator:  migrator,
		cloner:    cloner,
		notifier:  notifier,
		cache:     cache,
		metrics:   metrics,
		clk:       clk,
		validator: validate,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// InitializeSession creates a DRAFT session with no terms. It fails when an
// ACTIVE session already exists for the scope, when dates are invalid or
// the span is too short, or when the name is already taken.
func (s *CalendarService) InitializeSession(ctx context.Context, schoolID string, req InitializeSessionRequest) (*models.AcademicSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if err := s.validateSessionSpan(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.sessions.FindActive(ctx, schoolID, req.SchoolType); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an active session already exists for this school type")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check active session")
	}

	exists, err := s.sessions.ExistsByName(ctx, schoolID, req.SchoolType, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check session name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a session with this name already exists")
	}

	session := &models.AcademicSession{
		SchoolID:   schoolID,
		Name:       req.Name,
		SchoolType: req.SchoolType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     models.StatusDraft,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	return session, nil
}

// CreateTerm adds a DRAFT term to a session. Term numbers must be unique
// within the session and the dates must lie within the session's span.
func (s *CalendarService) CreateTerm(ctx context.Context, schoolID, sessionID string, req CreateTermRequest) (*models.Term, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}

	session, err := s.loadSession(ctx, schoolID, sessionID)
	if err != nil {
		return nil, err
	}

	if !req.StartDate.Before(req.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term start date must be before end date")
	}
	if req.StartDate.Before(session.StartDate) || req.EndDate.After(session.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term dates must fall within the session dates")
	}

	taken, err := s.terms.ExistsByNumber(ctx, sessionID, req.Number)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check term number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("term %d already exists in this session", req.Number))
	}

	term := &models.Term{
		SessionID:     sessionID,
		SchoolID:      schoolID,
		Name:          req.Name,
		Number:        req.Number,
		SchoolType:    session.SchoolType,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		HalfTermStart: req.HalfTermStart,
		HalfTermEnd:   req.HalfTermEnd,
		Status:        models.StatusDraft,
	}
	if err := s.terms.Create(ctx, term); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create term")
	}
	return term, nil
}

// StartNewTerm performs the full transition: for NEW_SESSION it creates an
// ACTIVE session with subdivided terms (superseding the previously active
// ones) and promotes every student; for NEW_TERM it activates an existing
// draft term and carries every student over. The timetable of the outgoing
// term is cloned into the new one and notifications are dispatched after
// commit.
func (s *CalendarService) StartNewTerm(ctx context.Context, schoolID string, req StartTermRequest) (*StartTermResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start term payload")
	}

	// the outgoing active term feeds the timetable clone; resolve it
	// before activation demotes it
	prevTerm, err := s.terms.FindActive(ctx, schoolID, req.SchoolType)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve active term")
	}

	var result *StartTermResult
	switch req.Intent {
	case IntentNewSession:
		result, err = s.startNewSession(ctx, schoolID, req)
	case IntentNewTerm:
		result, err = s.startDraftTerm(ctx, schoolID, req)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown start term intent")
	}
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, schoolID)

	if prevTerm != nil && s.cloner != nil {
		if _, err := s.cloner.CloneForTerm(ctx, prevTerm.ID, result.Term.ID); err != nil {
			s.logger.Warn("timetable clone failed", zap.String("school_id", schoolID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyTermStarted(schoolID, result.Session.Name, result.Term.Name, req.SchoolType)
	}

	return result, nil
}

func (s *CalendarService) startNewSession(ctx context.Context, schoolID string, req StartTermRequest) (*StartTermResult, error) {
	if req.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session name is required")
	}
	if err := s.validateSessionSpan(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	exists, err := s.sessions.ExistsByName(ctx, schoolID, req.SchoolType, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check session name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a session with this name already exists")
	}

	session := &models.AcademicSession{
		SchoolID:   schoolID,
		Name:       req.Name,
		SchoolType: req.SchoolType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     models.StatusActive,
	}

	spans := subdivideSession(req.StartDate, req.EndDate, req.SchoolType)
	terms := make([]models.Term, 0, len(spans))
	for i, span := range spans {
		status := models.StatusDraft
		if i == 0 {
			status = models.StatusActive
		}
		terms = append(terms, models.Term{
			Name:      span.Name,
			Number:    span.Number,
			StartDate: span.Start,
			EndDate:   span.End,
			Status:    status,
		})
	}

	if err := s.sessions.ActivateWithTerms(ctx, session, terms); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate session")
	}
	s.metrics.IncSessionsStarted()

	firstTerm := &terms[0]
	migrated, promoted, err := s.migrator.Promote(ctx, schoolID, firstTerm, req.SchoolType)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyPromotions(schoolID, firstTerm.Name, promoted)
	}

	s.logger.Info("new session started",
		zap.String("school_id", schoolID),
		zap.String("session", session.Name),
		zap.Int("migrated", migrated))

	return &StartTermResult{Session: session, Term: firstTerm, MigratedCount: migrated}, nil
}

func (s *CalendarService) startDraftTerm(ctx context.Context, schoolID string, req StartTermRequest) (*StartTermResult, error) {
	if req.TermID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term_id is required for NEW_TERM")
	}

	term, err := s.loadTerm(ctx, schoolID, req.TermID)
	if err != nil {
		return nil, err
	}
	if term.Status == models.StatusActive {
		return nil, appErrors.Clone(appErrors.ErrConflict, "term is already active")
	}
	if term.Status != models.StatusDraft {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only a draft term can be started")
	}

	if err := s.terms.ActivateExclusive(ctx, term); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate term")
	}
	term.Status = models.StatusActive

	migrated, err := s.migrator.CarryOver(ctx, schoolID, term, "", req.SchoolType)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindByID(ctx, term.SessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	session.Status = models.StatusActive

	s.logger.Info("draft term started",
		zap.String("school_id", schoolID),
		zap.String("term", term.Name),
		zap.Int("migrated", migrated))

	return &StartTermResult{Session: session, Term: term, MigratedCount: migrated}, nil
}

// EndTerm completes the unique ACTIVE term of the scope.
func (s *CalendarService) EndTerm(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.Term, error) {
	term, err := s.terms.FindActive(ctx, schoolID, schoolType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active term found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve active term")
	}

	if err := s.terms.UpdateStatus(ctx, term.ID, models.StatusCompleted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end term")
	}
	term.Status = models.StatusCompleted
	s.invalidateCache(ctx, schoolID)
	return term, nil
}

// EndSession completes the unique ACTIVE session of the scope together
// with every one of its terms, regardless of their individual status.
func (s *CalendarService) EndSession(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.AcademicSession, error) {
	session, err := s.sessions.FindActive(ctx, schoolID, schoolType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active session found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve active session")
	}

	if err := s.sessions.CompleteCascade(ctx, session.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}
	session.Status = models.StatusCompleted
	s.invalidateCache(ctx, schoolID)
	return session, nil
}

// ReactivateTerm moves a COMPLETED term whose end date has not passed back
// to ACTIVE, demoting any other active term of the scope and forcing the
// parent session back to ACTIVE.
func (s *CalendarService) ReactivateTerm(ctx context.Context, schoolID, termID string, schoolType models.SchoolType) (*models.Term, error) {
	term, err := s.loadTerm(ctx, schoolID, termID)
	if err != nil {
		return nil, err
	}

	if term.Status != models.StatusCompleted {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only a completed term can be reactivated")
	}
	if !term.EndDate.After(s.clk.Now()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term end date has already passed")
	}

	if err := s.terms.ActivateExclusive(ctx, term); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reactivate term")
	}
	term.Status = models.StatusActive
	s.invalidateCache(ctx, schoolID)
	return term, nil
}

// MigrateStudents runs a standalone migration sweep into the given term.
func (s *CalendarService) MigrateStudents(ctx context.Context, schoolID string, req MigrateStudentsRequest) (*MigrationSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid migration payload")
	}

	term, err := s.loadTerm(ctx, schoolID, req.TermID)
	if err != nil {
		return nil, err
	}

	if req.CarryOver {
		migrated, err := s.migrator.CarryOver(ctx, schoolID, term, req.SourceTermID, req.SchoolType)
		if err != nil {
			return nil, err
		}
		return &MigrationSummary{MigratedCount: migrated}, nil
	}

	migrated, promoted, err := s.migrator.Promote(ctx, schoolID, term, req.SchoolType)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyPromotions(schoolID, term.Name, promoted)
	}
	return &MigrationSummary{MigratedCount: migrated}, nil
}

// GetActiveSession returns the scope's ACTIVE session, read through the
// cache when one is configured.
func (s *CalendarService) GetActiveSession(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.AcademicSession, error) {
	key := cacheKey("session", schoolID, schoolType)
	if s.cache != nil {
		var cached models.AcademicSession
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	session, err := s.sessions.FindActive(ctx, schoolID, schoolType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active session found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active session")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, session, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache active session", zap.Error(err))
		}
	}
	return session, nil
}

// GetActiveTerm returns the scope's ACTIVE term, read through the cache
// when one is configured.
func (s *CalendarService) GetActiveTerm(ctx context.Context, schoolID string, schoolType models.SchoolType) (*models.Term, error) {
	key := cacheKey("term", schoolID, schoolType)
	if s.cache != nil {
		var cached models.Term
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	term, err := s.terms.FindActive(ctx, schoolID, schoolType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active term found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active term")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, term, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache active term", zap.Error(err))
		}
	}
	return term, nil
}

// ListSessions returns every session of the school with its terms.
func (s *CalendarService) ListSessions(ctx context.Context, schoolID string, schoolType models.SchoolType) ([]models.SessionDetail, error) {
	sessions, err := s.sessions.ListBySchool(ctx, schoolID, schoolType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}

	details := make([]models.SessionDetail, 0, len(sessions))
	for _, session := range sessions {
		terms, err := s.terms.ListBySession(ctx, session.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list session terms")
		}
		details = append(details, models.SessionDetail{AcademicSession: session, Terms: terms})
	}
	return details, nil
}

// validateSessionSpan enforces ordered dates and the duration floor. The
// span is rejected only when it is shorter than minSessionMonths AND
// shorter than minSessionDays.
func (s *CalendarService) validateSessionSpan(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "start and end dates are required")
	}
	if !start.Before(end) {
		return appErrors.Clone(appErrors.ErrValidation, "start date must be before end date")
	}

	months := monthsBetween(start, end)
	days := int(end.Sub(start).Hours() / 24)
	if months < minSessionMonths && days < minSessionDays {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("session must span at least %d months or %d days", minSessionMonths, minSessionDays))
	}
	return nil
}

func (s *CalendarService) loadSession(ctx context.Context, schoolID, sessionID string) (*models.AcademicSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.SchoolID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return session, nil
}

func (s *CalendarService) loadTerm(ctx context.Context, schoolID, termID string) (*models.Term, error) {
	term, err := s.terms.FindByID(ctx, termID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	if term.SchoolID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	return term, nil
}

func (s *CalendarService) invalidateCache(ctx context.Context, schoolID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("calendar:*:%s:*", schoolID)); err != nil {
		s.logger.Warn("failed to invalidate calendar cache", zap.String("school_id", schoolID), zap.Error(err))
	}
}

func cacheKey(kind, schoolID string, schoolType models.SchoolType) string {
	return fmt.Sprintf("calendar:%s:%s:%s", kind, schoolID, schoolType)
}
