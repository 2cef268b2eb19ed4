package http

import (
	"context"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/security"
)

type ctxKey int

const claimsKey ctxKey = iota

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the authenticated caller, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok && claims != nil
}

// caller returns the user id and role placed in ctx by the auth middleware.
func caller(ctx context.Context) (string, domain.Role) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", ""
	}
	return claims.UserID, claims.Role
}
