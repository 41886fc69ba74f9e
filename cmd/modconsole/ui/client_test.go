package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAdminAPI(t *testing.T, isAdmin bool) (*httptest.Server, *[]string) {
	var calls []string
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" {
				write(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "No token provided"})
				return
			}
			calls = append(calls, r.Method+" "+r.URL.Path)
			h(w, r)
		}
	}
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "pw" {
			write(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Invalid password"})
			return
		}
		write(w, http.StatusOK, map[string]any{"success": true, "token": "tok",
			"user": map[string]any{"username": body["username"], "isAdmin": isAdmin}})
	})
	mux.HandleFunc("GET /api/admin/pending-photos", authed(func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{"success": true, "photos": []map[string]any{
			{"id": "p1", "title": "Nap", "category": "sleeping", "userId": "u1", "user": map[string]any{"username": "pup_lover"}},
			{"id": "p2", "title": "Run", "category": "playing", "userId": "u2"},
		}})
	}))
	mux.HandleFunc("PATCH /api/admin/photos/{id}/approve", authed(func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{"success": true})
	}))
	mux.HandleFunc("PATCH /api/admin/photos/{id}/reject", authed(func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Photo is not pending approval"})
	}))
	mux.HandleFunc("GET /api/admin/stats", authed(func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{"success": true, "stats": map[string]any{"totalUsers": 3, "pendingPhotos": 2}})
	}))
	mux.HandleFunc("POST /api/auth/logout", authed(func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{"success": true})
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestSessionAdminFlow(t *testing.T) {
	srv, calls := fakeAdminAPI(t, true)
	ctx := context.Background()
	s := NewSession(srv.URL+"/", time.Second)

	_, err := s.Pending(ctx)
	assert.EqualError(t, err, "No token provided")

	assert.EqualError(t, s.Login(ctx, "admin", "wrong"), "Invalid password")
	require.NoError(t, s.Login(ctx, "admin", "pw"))
	assert.Equal(t, "admin", s.Username())

	pending, err := s.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "pup_lover", pending[0].Owner())
	assert.Equal(t, "u2", pending[1].Owner())

	require.NoError(t, s.Approve(ctx, "p1"))
	assert.EqualError(t, s.Reject(ctx, "p2", "blurry"), "Photo is not pending approval")

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.TotalUsers)
	assert.EqualValues(t, 2, st.PendingPhotos)

	require.NoError(t, s.Logout(ctx))
	assert.Empty(t, s.Username())
	assert.Contains(t, *calls, "PATCH /api/admin/photos/p1/approve")
}

func TestSessionRejectsNonAdmin(t *testing.T) {
	srv, _ := fakeAdminAPI(t, false)
	s := NewSession(srv.URL, time.Second)
	assert.EqualError(t, s.Login(context.Background(), "pup_lover", "pw"), "account is not an admin")
	assert.Empty(t, s.Username())
}
