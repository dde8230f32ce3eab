package utils

import (
	"fmt"
	"log"
	"net/http"

	"artschool/backend/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers transactional mail (password resets, status changes).
type Mailer interface {
	Send(to, subject, body string) error
}

// NewMailer возвращает sendgrid-мейлер, если задан API-ключ,
// иначе консольный для локальной разработки.
func NewMailer(cfg *config.Config, logger *log.Logger) Mailer {
	if cfg.SendgridAPIKey != "" {
		return &SendgridMailer{
			Key:  cfg.SendgridAPIKey,
			From: cfg.MailFromAddress,
		}
	}
	return &ConsoleMailer{Logger: logger}
}

type ConsoleMailer struct {
	Logger *log.Logger
}

func (m *ConsoleMailer) Send(to, subject, body string) error {
	m.Logger.Printf("MAIL to=%s subject=%q\n%s", to, subject, body)
	return nil
}

type SendgridMailer struct {
	Key  string
	From string
}

func (m *SendgridMailer) Send(to, subject, body string) error {
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail("", m.From),
		subject,
		sgmail.NewEmail("", to),
		body,
		body,
	)

	req := sendgrid.GetRequest(m.Key, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
