// Package smtp delivers portal emails over SMTP with plain auth.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/nguyenvanlong0501/job-portal/internal/observability/notify"
)

// SendFunc matches net/smtp.SendMail and exists so tests can intercept delivery.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Config captures the subset of SMTP behaviour we need.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	RetryLimit int
	Send       SendFunc
}

// Client delivers notification emails to an SMTP relay.
type Client struct {
	addr       string
	host       string
	username   string
	password   string
	from       string
	retryLimit int
	send       SendFunc
}

// NewClient builds an SMTP mailer. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		return nil, errors.New("smtp from address is required")
	}

	port := cfg.Port
	if port <= 0 {
		port = 587
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	send := cfg.Send
	if send == nil {
		send = smtp.SendMail
	}

	return &Client{
		addr:       net.JoinHostPort(host, fmt.Sprintf("%d", port)),
		host:       host,
		username:   strings.TrimSpace(cfg.Username),
		password:   cfg.Password,
		from:       from,
		retryLimit: retries,
		send:       send,
	}, nil
}

// Send delivers one message, retrying transient failures with linear backoff.
func (c *Client) Send(ctx context.Context, msg notify.Message) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return errors.New("recipient address is required")
	}

	body := c.formatMessage(to, msg)

	var auth smtp.Auth
	if c.username != "" {
		auth = smtp.PlainAuth("", c.username, c.password, c.host)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.send(c.addr, auth, c.from, []string{to}, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			// Simple linear backoff to avoid thundering retries.
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return fmt.Errorf("smtp send to %s: %w", to, lastErr)
}

func (c *Client) formatMessage(to string, msg notify.Message) []byte {
	contentType := "text/plain; charset=\"UTF-8\""
	if msg.HTML {
		contentType = "text/html; charset=\"UTF-8\""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", c.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// sanitizeHeader strips CR/LF so message fields cannot inject extra headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
