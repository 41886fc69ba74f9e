package middleware

import (
	"context"
	jwtutil "pupshare/backend/app/jwt"
)

// Identity is the authenticated user of a request, as of this request.
type Identity struct {
	ID      string
	IsAdmin bool
}

func GetIdentity(ctx context.Context) *Identity {
	if v := ctx.Value(IdentityKey); v != nil {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}

func GetClaims(ctx context.Context) *jwtutil.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if c, ok := v.(*jwtutil.Claims); ok {
			return c
		}
	}
	return nil
}
