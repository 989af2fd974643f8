package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/config"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/mailer"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *recordingMailer) Send(msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *recordingMailer) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

type mockMemberRepo struct {
	members []models.Member
}

func (m *mockMemberRepo) ListNotifiable(ctx context.Context, schoolID string) ([]models.Member, error) {
	return m.members, nil
}

func newNotificationFixture(t *testing.T, members []models.Member, batchSize int) (*NotificationService, *recordingMailer) {
	t.Helper()
	mail := &recordingMailer{}
	svc := NewNotificationService(&mockMemberRepo{members: members}, mail, config.NotificationConfig{
		BatchSize:    batchSize,
		QueueWorkers: 1,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	t.Cleanup(func() {
		cancel()
		svc.Stop()
	})
	return svc, mail
}

func TestNotifyTermStartedDeliversToMembers(t *testing.T) {
	members := []models.Member{
		{ID: "m1", FullName: "Ada", Email: "ada@example.com", ClassLevel: "JSS 1"},
		{ID: "m2", FullName: "Ben", Email: "ben@example.com", ClassLevel: "JSS 2"},
	}
	svc, mail := newNotificationFixture(t, members, 10)

	svc.NotifyTermStarted("sch-1", "2025/2026", "1st Term", "")

	require.Eventually(t, func() bool { return mail.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	msgs := mail.messages()
	assert.Equal(t, "1st Term has begun", msgs[0].Subject)
	assert.Contains(t, msgs[0].TextBody, "2025/2026")
}

func TestNotifyTermStartedFiltersBySchoolType(t *testing.T) {
	members := []models.Member{
		{ID: "m1", FullName: "Ada", Email: "ada@example.com", ClassLevel: "JSS 1"},
		{ID: "m2", FullName: "Uni", Email: "uni@example.com", ClassLevel: "200L"},
	}
	svc, mail := newNotificationFixture(t, members, 10)

	svc.NotifyTermStarted("sch-1", "2025/2026", "1st Term", models.SchoolTypeSecondary)

	require.Eventually(t, func() bool { return mail.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "ada@example.com", mail.messages()[0].ToEmail)
}

func TestNotifyTermStartedSplitsBatches(t *testing.T) {
	var members []models.Member
	for i := 0; i < 5; i++ {
		members = append(members, models.Member{
			FullName: "Member", Email: "member@example.com", ClassLevel: "JSS 1",
		})
	}
	svc, mail := newNotificationFixture(t, members, 2)

	svc.NotifyTermStarted("sch-1", "2025/2026", "1st Term", "")

	require.Eventually(t, func() bool { return mail.count() == 5 }, 2*time.Second, 10*time.Millisecond)
}

func TestNotifyPromotions(t *testing.T) {
	svc, mail := newNotificationFixture(t, nil, 10)

	svc.NotifyPromotions("sch-1", "1st Term", []models.PromotedStudent{
		{Name: "Ada", Email: "ada@example.com", PreviousClass: "JSS 1", NewClass: "JSS 2"},
		{Name: "Zoe", Email: "zoe@example.com", PreviousClass: "JSS 3", NewClass: models.GraduatedClassName},
		{Name: "NoEmail", Email: "", PreviousClass: "JSS 1", NewClass: "JSS 2"},
	})

	require.Eventually(t, func() bool { return mail.count() == 2 }, 2*time.Second, 10*time.Millisecond)

	msgs := mail.messages()
	var promotion, graduation *mailer.Message
	for i := range msgs {
		switch msgs[i].ToEmail {
		case "ada@example.com":
			promotion = &msgs[i]
		case "zoe@example.com":
			graduation = &msgs[i]
		}
	}
	require.NotNil(t, promotion)
	assert.Contains(t, promotion.Subject, "promoted to JSS 2")
	require.NotNil(t, graduation)
	assert.Contains(t, graduation.Subject, "graduation")
}

func TestNotifyPromotionsEmptyListNoop(t *testing.T) {
	svc, mail := newNotificationFixture(t, nil, 10)

	svc.NotifyPromotions("sch-1", "1st Term", nil)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, mail.count())
}
