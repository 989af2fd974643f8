package mailer

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	key  string
	from *sgmail.Email
}

// NewSendgrid constructs a SendGrid-backed mailer.
func NewSendgrid(apiKey, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

// Send delivers a single message.
func (m *SendgridMailer) Send(msg Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)

	text := msg.TextBody
	if text == "" {
		text = " "
	}
	v3.AddContent(sgmail.NewContent("text/plain", text))
	if msg.HTMLBody != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
