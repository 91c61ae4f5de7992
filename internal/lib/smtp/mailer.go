package smtp

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"strings"

	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
)

const activationSubject = "Ative sua conta na Reborn Technology"

var activationTmpl = template.Must(template.New("activation").Parse(`<!DOCTYPE html>
<html>
<body>
<p>Olá, {{.Name}}!</p>
<p>Obrigado por se registrar na Reborn Technology.</p>
<p>Seu código de ativação é: <b>{{.Code}}</b></p>
<p>Use-o junto com o seu nome de usuário <b>{{.Username}}</b> para ativar a conta.</p>
</body>
</html>
`))

// ActivationData данные письма с кодом активации.
type ActivationData struct {
	Name     string
	Username string
	Code     string
}

// Mailer собирает MIME-сообщения и отправляет их через транспорт.
type Mailer struct {
	transport Dialer
	fromName  string
	log       *slog.Logger
}

// NewMailer создает Mailer.
func NewMailer(transport Dialer, fromName string, log *slog.Logger) *Mailer {
	return &Mailer{transport: transport, fromName: fromName, log: log}
}

// SendActivation отправляет письмо с кодом активации.
func (m *Mailer) SendActivation(to string, data ActivationData) error {
	const op = "smtp.Mailer.SendActivation"
	var buf bytes.Buffer
	if err := activationTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("%s: render: %w", op, err)
	}
	if err := m.Send(to, activationSubject, buf.String()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Send отправляет HTML-письмо одному получателю.
func (m *Mailer) Send(to, subject, html string) error {
	const op = "smtp.Mailer.Send"
	from := m.transport.From()
	msg := buildMessage(m.fromName, from, to, subject, html)

	client, err := m.transport.Dial()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			m.log.Debug("smtp client close", sl.Err(closeErr))
		}
	}()

	if err := client.Mail(from); err != nil {
		m.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return fmt.Errorf("%s: mail from: %w", op, err)
	}
	if err := client.Rcpt(to); err != nil {
		m.log.Error("failed to set RCPT TO", slog.String("recipient", to), sl.Err(err))
		return fmt.Errorf("%s: rcpt: %w", op, err)
	}
	wc, err := client.Data()
	if err != nil {
		m.log.Error("failed to get Data writer", sl.Err(err))
		return fmt.Errorf("%s: data: %w", op, err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		m.log.Error("failed to write email body", sl.Err(err))
		return fmt.Errorf("%s: write: %w", op, err)
	}
	if err := wc.Close(); err != nil {
		m.log.Error("failed to close Data writer", sl.Err(err))
		return fmt.Errorf("%s: close data: %w", op, err)
	}
	if err := client.Quit(); err != nil {
		m.log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("%s: quit: %w", op, err)
	}

	m.log.Info("email sent successfully", slog.String("to", to))
	return nil
}

func buildMessage(fromName, from, to, subject, html string) string {
	fromHeader := from
	if fromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), from)
	}
	return strings.Join([]string{
		"From: " + fromHeader,
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		html,
	}, "\r\n")
}
