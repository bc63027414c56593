package config

// SMTPConfig contains outbound email configuration. An empty Host disables
// email entirely; verification mails are then dropped with a warning.
type SMTPConfig struct {
	Host     string `env:"HOST"     envDefault:""`
	Port     int    `env:"PORT"     envDefault:"587"`
	Username string `env:"USERNAME" envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	From     string `env:"FROM"     envDefault:"no-reply@jobportal.local"`

	// RetryLimit is how many extra delivery attempts a failed send gets.
	RetryLimit int `env:"RETRY_LIMIT" envDefault:"2"`
}

// Enabled reports whether outbound email is configured.
func (s *SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// Sanitize applies guardrails to SMTP configuration values.
func (s *SMTPConfig) Sanitize() {
	if s.Port <= 0 {
		s.Port = 587
	}
	if s.RetryLimit < 0 {
		s.RetryLimit = 0
	}
}
