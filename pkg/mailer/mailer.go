package mailer

// Message is a single outbound email.
type Message struct {
	ToName   string
	ToEmail  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers email messages. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(msg Message) error
}
