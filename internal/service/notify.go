package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nguyenvanlong0501/job-portal/internal/observability/notify"
)

// mailTimeout bounds a single best-effort notification send.
const mailTimeout = 15 * time.Second

// NotifyOptions groups the outbound email dependencies shared by services.
type NotifyOptions struct {
	Mailer notify.Mailer // Optional: nil disables email
	Logger *slog.Logger  // Optional: structured logger
}

// sendMailAsync fires one notification email without blocking the caller.
// Delivery runs on its own timeout context; failures are logged and dropped so
// they can never affect the committed result of the triggering request.
func sendMailAsync(logger *slog.Logger, mailer notify.Mailer, msg notify.Message) {
	if mailer == nil || msg.To == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := mailer.Send(ctx, msg); err != nil {
			logger.Warn("notification email failed",
				"to", msg.To,
				"subject", msg.Subject,
				"error", err)
		}
	}()
}
