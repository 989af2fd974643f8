package mailer

import "go.uber.org/zap"

// ConsoleMailer logs messages instead of delivering them. Used in
// development and when notifications are disabled.
type ConsoleMailer struct {
	logger *zap.Logger
}

// NewConsole constructs a console mailer.
func NewConsole(logger *zap.Logger) *ConsoleMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleMailer{logger: logger}
}

// Send logs the message.
func (m *ConsoleMailer) Send(msg Message) error {
	m.logger.Info("email (console)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}
