package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/coffeelux/auth/internal/auth/domain"
)

// SMTPConfig holds the relay settings. FromName is the display name on the
// From header; From is the envelope sender.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func (c SMTPConfig) addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Valid reports whether the config is complete enough to send mail.
func (c SMTPConfig) Valid() bool {
	return c.Host != "" && c.Port != "" && c.From != ""
}

// SMTPNotifier sends recovery emails through a plain SMTP relay.
type SMTPNotifier struct {
	cfg SMTPConfig
	log *slog.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, log *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

func (n *SMTPNotifier) SendOTP(ctx context.Context, email, fullName, code string) error {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your password reset verification code is: %s\r\n\r\n"+
			"The code is valid for %d minutes and can be used once. If you did not "+
			"request a password reset, you can ignore this email.\r\n\r\n"+
			"CoffeeLux",
		fullName, code, int(domain.OTPTTL.Minutes()),
	)
	return n.send(ctx, email, "CoffeeLux password reset code", body)
}

func (n *SMTPNotifier) SendPasswordChanged(ctx context.Context, email, fullName string) error {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your CoffeeLux password was just changed. If this was not you, contact "+
			"your administrator immediately.\r\n\r\n"+
			"CoffeeLux",
		fullName,
	)
	return n.send(ctx, email, "CoffeeLux password updated", body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := n.cfg.From
	if n.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.From)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(n.cfg.addr(), auth, n.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		n.log.Error("smtp send failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}

	n.log.Info("email sent", "to", to, "subject", subject)
	return nil
}
