package notify

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/util"
)

const mailTimeout = 10 * time.Second

const defaultMailHost = "smtp.gmail.com"
const defaultMailPort = 587

// Mailer sends passenger emails over SMTP. When no credentials are
// configured it logs the message content instead, so development setups
// still show what would have gone out.
type Mailer struct {
	Host string
	Port int

	Username string
	Password string
}

func NewMailerFromEnv() *Mailer {
	env := util.GetEnvironmentVariables()

	mailer := &Mailer{
		Host: defaultMailHost,
		Port: defaultMailPort,

		Username: env["YATHRA_EMAIL_USER"],
		Password: env["YATHRA_EMAIL_PASS"],
	}

	if env["YATHRA_EMAIL_HOST"] != "" {
		mailer.Host = env["YATHRA_EMAIL_HOST"]
	}

	if env["YATHRA_EMAIL_PORT"] != "" {
		if n, err := strconv.Atoi(env["YATHRA_EMAIL_PORT"]); err == nil {
			mailer.Port = n
		}
	}

	return mailer
}

func (m *Mailer) Configured() bool {
	return m.Username != "" && m.Password != ""
}

// Send delivers one email. It never panics or returns an error; the result
// reports whether delivery succeeded.
func (m *Mailer) Send(to string, subject string, text string, html string) bool {
	if !m.Configured() {
		log.Warn().Str("to", to).Str("subject", subject).Msg("Email credentials missing, logging content instead of sending")
		log.Info().Msg(util.TrimString(text, 256))

		return false
	}

	address := fmt.Sprintf("%s:%d", m.Host, m.Port)

	connection, err := net.DialTimeout("tcp", address, mailTimeout)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("Failed to dial mail server")
		return false
	}
	connection.SetDeadline(time.Now().Add(3 * mailTimeout))

	client, err := smtp.NewClient(connection, m.Host)
	if err != nil {
		log.Error().Err(err).Msg("Failed to greet mail server")
		connection.Close()
		return false
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.Host}); err != nil {
			log.Error().Err(err).Msg("Failed to start TLS with mail server")
			return false
		}
	}

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := client.Auth(auth); err != nil {
		log.Error().Err(err).Msg("Failed to authenticate with mail server")
		return false
	}

	if err := client.Mail(m.Username); err != nil {
		log.Error().Err(err).Msg("Mail server rejected sender")
		return false
	}
	if err := client.Rcpt(to); err != nil {
		log.Error().Err(err).Str("to", to).Msg("Mail server rejected recipient")
		return false
	}

	writer, err := client.Data()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open mail body")
		return false
	}

	if _, err := writer.Write(buildMessage(m.Username, to, subject, text, html)); err != nil {
		log.Error().Err(err).Msg("Failed to write mail body")
		writer.Close()
		return false
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to finish mail body")
		return false
	}

	client.Quit()

	log.Info().Str("to", to).Str("subject", subject).Msg("Sent email notification")

	return true
}

const mimeBoundary = "yathra-mail-boundary"

func buildMessage(from string, to string, subject string, text string, html string) []byte {
	if html == "" {
		return []byte(fmt.Sprintf(
			"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n",
			from, to, subject, text,
		))
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\n", from, to, subject)
	message += fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mimeBoundary)
	message += fmt.Sprintf("--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", mimeBoundary, text)
	message += fmt.Sprintf("--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", mimeBoundary, html)
	message += fmt.Sprintf("--%s--\r\n", mimeBoundary)

	return []byte(message)
}
