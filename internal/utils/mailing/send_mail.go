package mailing

import (
	"strconv"

	"foodgram/internal/logging"
	"foodgram/internal/utils"

	"gopkg.in/gomail.v2"
)

const defaultSMTPPort = 587

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		Host     string
		Port     int
		Sender   string
		Email    string
		Password string
	}

	smtpMailer struct {
		from   string
		dialer *gomail.Dialer
	}
)

// LoadMailConfig reads the SMTP_* keys. A malformed port falls back to 587.
func LoadMailConfig() MailConfig {
	port, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		logging.Warn().Str("smtp_port", utils.GetConfig("SMTP_PORT")).Msg("invalid smtp port, using default")
		port = defaultSMTPPort
	}
	return MailConfig{
		Host:     utils.GetConfig("SMTP_HOST"),
		Port:     port,
		Sender:   utils.GetConfig("SMTP_SENDER_NAME"),
		Email:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		Password: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	msg := gomail.NewMessage()
	return &smtpMailer{
		from:   msg.FormatAddress(config.Email, config.Sender),
		dialer: gomail.NewDialer(config.Host, config.Port, config.Email, config.Password),
	}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
