package config

import "time"

// AuthConfig groups token signing and admin console configuration.
type AuthConfig struct {
	// JWTSecret signs bearer tokens. Required outside development.
	JWTSecret string `env:"JWT_SECRET"`

	// Issuer is the iss claim stamped on issued tokens.
	Issuer string `env:"JWT_ISSUER" envDefault:"jobportal"`

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// AdminEmail and AdminPassword are the admin console login. The admin is a
	// configured operator, not an accounts-table row; leaving either empty
	// disables admin login.
	AdminEmail    string `env:"ADMIN_EMAIL"    envDefault:""`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = 24 * time.Hour
	}
}
