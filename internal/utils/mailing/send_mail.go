package mailing

import (
	"errors"
	"strconv"

	"gopkg.in/gomail.v2"
)

var ErrMailNotConfigured = errors.New("smtp is not configured")

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		config MailConfig
		dialer *gomail.Dialer
	}
)

func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPEmail != ""
}

func NewMailer(config MailConfig) (Mailer, error) {
	if !config.Enabled() {
		return nil, ErrMailNotConfigured
	}
	port, err := strconv.Atoi(config.SMTPPort)
	if err != nil {
		return nil, err
	}

	return &smtpMailer{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, port, config.SMTPEmail, config.SMTPPassword),
	}, nil
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		mailer.SetHeader("From", m.config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	return m.dialer.DialAndSend(mailer)
}
