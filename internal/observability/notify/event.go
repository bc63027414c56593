// Package notify defines the outbound email notification contract. Delivery is
// best effort; callers fire notifications asynchronously and never let a send
// failure affect the triggering request.
package notify

import (
	"context"
)

// Message is the canonical payload handed to a mail sink.
type Message struct {
	To      string
	Subject string
	Body    string
	// HTML marks the body as text/html rather than text/plain.
	HTML bool
}

// Mailer describes a destination capable of delivering portal emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailerFunc adapts a function to the Mailer interface (useful for tests).
type MailerFunc func(ctx context.Context, msg Message) error

// Send implements the Mailer interface.
func (f MailerFunc) Send(ctx context.Context, msg Message) error {
	if f == nil {
		return nil
	}
	return f(ctx, msg)
}

// Discard is a Mailer that drops every message. Used when SMTP is not configured.
var Discard Mailer = MailerFunc(nil)
