package httpx

import (
	"context"

	domainauth "github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
)

// principalKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type principalKey struct{}

// SetPrincipalInContext returns a child context that carries the authenticated
// principal. If principal is nil, the original ctx is returned unchanged.
func SetPrincipalInContext(ctx context.Context, principal *domainauth.Principal) context.Context {
	if principal == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipalFromContext returns the principal from context and a boolean
// indicating presence.
func GetPrincipalFromContext(ctx context.Context) (*domainauth.Principal, bool) {
	if p, ok := ctx.Value(principalKey{}).(*domainauth.Principal); ok && p != nil {
		return p, true
	}
	return nil, false
}

// requestIDKey is the context key carrying the request id set by RequestID.
type requestIDKey struct{}

func setRequestIDInContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestIDFromContext returns the request id assigned by the RequestID
// middleware, or an empty string when the middleware did not run.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
