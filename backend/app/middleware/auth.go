package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	jwtutil "pupshare/backend/app/jwt"
	"pupshare/backend/app/models"
	"pupshare/backend/app/session"
	"pupshare/backend/global"
	"strings"
)

type ctxKey int

const (
	ClaimsKey ctxKey = iota + 1
	IdentityKey
)

// UserLookup resolves the user behind a token on every request, so role
// changes apply without re-login.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type Auth struct {
	Signer  *jwtutil.Signer
	Users   UserLookup
	Revoker session.Revoker
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	// browsers cannot set headers on a websocket handshake
	return r.URL.Query().Get("access_token")
}

// identify returns the request identity, or a client-facing message when the
// request carries no usable credentials.
func (a *Auth) identify(r *http.Request) (*Identity, *jwtutil.Claims, string) {
	token := bearerToken(r)
	if token == "" {
		return nil, nil, "No token provided"
	}
	claims, err := a.Signer.Parse(token)
	if err != nil {
		if jwtutil.Expired(err) {
			return nil, nil, "Token expired"
		}
		return nil, nil, "Invalid token"
	}
	if a.Revoker != nil {
		revoked, err := a.Revoker.Revoked(r.Context(), claims.ID)
		if err != nil {
			global.Logger.Warn().Err(err).Msg("check token revocation")
		}
		if revoked {
			return nil, nil, "Token revoked"
		}
	}
	u, err := a.Users.FindByID(r.Context(), claims.UserID)
	if err != nil || u == nil {
		return nil, nil, "User not found"
	}
	return &Identity{ID: u.ID, IsAdmin: u.IsAdmin}, claims, ""
}

func withIdentity(r *http.Request, id *Identity, claims *jwtutil.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), IdentityKey, id)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return r.WithContext(ctx)
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, claims, msg := a.identify(r)
		if id == nil {
			deny(w, http.StatusUnauthorized, msg)
			return
		}
		next.ServeHTTP(w, withIdentity(r, id, claims))
	})
}

// OptionalAuth attaches an identity when a valid token is present and lets
// anonymous requests through unchanged.
func (a *Auth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, claims, _ := a.identify(r); id != nil {
			r = withIdentity(r, id, claims)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 401 for missing identity before 403 for non-admins.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetIdentity(r.Context())
		if id == nil || !id.IsAdmin {
			deny(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(FailureBody(status, msg))
}

// FailureBody is the envelope of every failed request.
func FailureBody(status int, msg string) map[string]any {
	return map[string]any{"success": false, "error": msg, "statusCode": status}
}
