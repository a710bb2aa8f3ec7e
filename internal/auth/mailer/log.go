package mailer

import (
	"context"
	"log/slog"
)

// LogNotifier writes the would-be emails to the log. Used when no SMTP relay
// is configured, so local runs still surface the verification code.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendOTP(ctx context.Context, email, fullName, code string) error {
	n.log.Info("otp email (log only)", "to", email, "name", fullName, "code", code)
	return nil
}

func (n *LogNotifier) SendPasswordChanged(ctx context.Context, email, fullName string) error {
	n.log.Info("password changed email (log only)", "to", email, "name", fullName)
	return nil
}
