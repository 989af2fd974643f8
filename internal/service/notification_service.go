package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/config"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/jobs"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/mailer"
)

type notificationMemberRepository interface {
	ListNotifiable(ctx context.Context, schoolID string) ([]models.Member, error)
}

// NotificationService dispatches lifecycle and promotion emails after a
// calendar transition commits. Dispatch is fire-and-forget: the triggers
// return immediately, batches flow through a background queue with a fixed
// inter-batch delay, and every failure is logged and swallowed. A failed
// email never invalidates a committed transition.
type NotificationService struct {
	members    notificationMemberRepository
	mail       mailer.Mailer
	queue      *jobs.Queue
	logger     *zap.Logger
	batchSize  int
	batchDelay time.Duration
}

// NewNotificationService creates the notification service and its backing
// queue. Start must be called before triggers dispatch anything.
func NewNotificationService(members notificationMemberRepository, mail mailer.Mailer, cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 30
	}

	s := &NotificationService{
		members:    members,
		mail:       mail,
		logger:     logger,
		batchSize:  batchSize,
		batchDelay: cfg.BatchDelay,
	}
	s.queue = jobs.NewQueue("notifications", s.handleBatch, jobs.QueueConfig{
		Workers:    cfg.QueueWorkers,
		MaxRetries: cfg.QueueRetries,
		Logger:     logger,
	})
	return s
}

// Start begins queue consumption.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// NotifyTermStarted sends a lifecycle notice to every school member with
// an email address, filtered by school type. Non-blocking.
func (s *NotificationService) NotifyTermStarted(schoolID, sessionName, termName string, schoolType models.SchoolType) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		members, err := s.members.ListNotifiable(ctx, schoolID)
		if err != nil {
			s.logger.Error("failed to load notification audience", zap.String("school_id", schoolID), zap.Error(err))
			return
		}

		subject := fmt.Sprintf("%s has begun", termName)
		var batch []mailer.Message
		for _, member := range members {
			if !matchesSchoolType(schoolType, "", member.ClassLevel) {
				continue
			}
			batch = append(batch, mailer.Message{
				ToName:   member.FullName,
				ToEmail:  member.Email,
				Subject:  subject,
				TextBody: fmt.Sprintf("Dear %s,\n\n%s of the %s academic session has begun.", member.FullName, termName, sessionName),
			})
			if len(batch) == s.batchSize {
				s.enqueue("lifecycle", batch)
				batch = nil
			}
		}
		if len(batch) > 0 {
			s.enqueue("lifecycle", batch)
		}
	}()
}

// NotifyPromotions sends each promoted or graduated student a personal
// notice. Non-blocking.
func (s *NotificationService) NotifyPromotions(schoolID, termName string, students []models.PromotedStudent) {
	if len(students) == 0 {
		return
	}
	go func() {
		var batch []mailer.Message
		for _, student := range students {
			if student.Email == "" {
				continue
			}
			msg := mailer.Message{
				ToName:  student.Name,
				ToEmail: student.Email,
			}
			if student.NewClass == models.GraduatedClassName {
				msg.Subject = "Congratulations on your graduation"
				msg.TextBody = fmt.Sprintf("Dear %s,\n\nCongratulations! You have completed %s and are now an alumnus.", student.Name, student.PreviousClass)
			} else {
				msg.Subject = fmt.Sprintf("You have been promoted to %s", student.NewClass)
				msg.TextBody = fmt.Sprintf("Dear %s,\n\nYou have been promoted from %s to %s for %s.", student.Name, student.PreviousClass, student.NewClass, termName)
			}
			batch = append(batch, msg)
			if len(batch) == s.batchSize {
				s.enqueue("promotion", batch)
				batch = nil
			}
		}
		if len(batch) > 0 {
			s.enqueue("promotion", batch)
		}
	}()
}

func (s *NotificationService) enqueue(kind string, batch []mailer.Message) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    kind,
		Payload: batch,
	})
	if err != nil {
		s.logger.Error("failed to enqueue notification batch", zap.String("type", kind), zap.Error(err))
	}
}

// handleBatch delivers one batch and applies the inter-batch delay for
// outbound rate limiting. Per-message failures are logged, never retried
// as a batch.
func (s *NotificationService) handleBatch(ctx context.Context, job jobs.Job) error {
	batch, ok := job.Payload.([]mailer.Message)
	if !ok {
		s.logger.Error("dropping notification job with unexpected payload", zap.String("job_id", job.ID))
		return nil
	}

	for _, msg := range batch {
		if err := s.mail.Send(msg); err != nil {
			s.logger.Error("failed to send notification email",
				zap.String("to", msg.ToEmail),
				zap.String("type", job.Type),
				zap.Error(err))
		}
	}

	if s.batchDelay > 0 {
		timer := time.NewTimer(s.batchDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
	return nil
}
