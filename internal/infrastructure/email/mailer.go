package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds SMTP delivery settings. With Enabled false the mailer only
// logs, which is the development default.
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends transactional email over SMTP.
type Mailer struct {
	cfg    Config
	logger zerolog.Logger
}

func NewMailer(cfg Config, logger zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// SendPasswordReset emails the reset ticket to the user.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, name, resetToken string) error {
	subject := "Password reset request"
	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account. Use the code below within 24 hours:\n\n%s\n\nIf you did not request this, you can ignore this email.\n",
		name, resetToken,
	)
	return m.send(ctx, to, subject, body)
}

// SendNewAccount emails a welcome message to a newly created user.
func (m *Mailer) SendNewAccount(ctx context.Context, to, name string) error {
	subject := "Your account is ready"
	body := fmt.Sprintf(
		"Hello %s,\n\nAn account has been created for you. Sign in with your email address and the password you were given, then change it.\n",
		name,
	)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.cfg.Enabled {
		m.logger.Info().Str("to", to).Str("subject", subject).Msg("email delivery disabled, skipping send")
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
