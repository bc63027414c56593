// Package jwtauth issues and verifies the bearer tokens used by the HTTP API.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
)

// DefaultTTL is used when no token lifetime is configured.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail signature, expiry, or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Options configures a Manager.
type Options struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Manager signs and parses HS256 bearer tokens carrying the account identity.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type portalClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewManager builds a token manager. The signing secret is required.
func NewManager(opts Options) (*Manager, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		secret: opts.Secret,
		issuer: opts.Issuer,
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue signs a token for the given account identity.
func (m *Manager) Issue(accountID string, role auth.Role, email string) (string, error) {
	if accountID == "" {
		return "", errors.New("account id is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	now := m.now()
	claims := portalClaims{
		Role:  string(role),
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and extracts the principal it carries.
func (m *Manager) Parse(tokenStr string) (*auth.Principal, error) {
	claims := &portalClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	role := auth.Role(claims.Role)
	if !role.Valid() || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	p := &auth.Principal{
		AccountID: claims.Subject,
		Role:      role,
		Email:     claims.Email,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}
