package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Session is an authenticated HTTP session against the admin API.
type Session struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.Mutex
	token string
	user  string
}

func NewSession(baseURL string, timeout time.Duration) *Session {
	return &Session{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// PendingPhoto is one row of the review queue.
type PendingPhoto struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	UserID    *string   `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	User      *struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (p PendingPhoto) Owner() string {
	if p.User != nil {
		return p.User.Username
	}
	if p.UserID != nil {
		return *p.UserID
	}
	return "-"
}

type Stats struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalPhotos    int64 `json:"totalPhotos"`
	PendingPhotos  int64 `json:"pendingPhotos"`
	ApprovedPhotos int64 `json:"approvedPhotos"`
	TotalComments  int64 `json:"totalComments"`
}

// do sends body as JSON and decodes the response envelope into out.
func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.mu.Lock()
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	s.mu.Unlock()

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if resp.StatusCode >= 300 {
		var env struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &env)
		if env.Error != "" {
			env.Message = env.Error
		}
		if env.Message == "" {
			env.Message = resp.Status
		}
		return errors.New(env.Message)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// Login exchanges credentials for a token and checks the account is an admin.
func (s *Session) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			IsAdmin  bool   `json:"isAdmin"`
		} `json:"user"`
	}
	if err := s.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password}, &resp); err != nil {
		return err
	}
	if !resp.User.IsAdmin {
		return errors.New("account is not an admin")
	}
	s.mu.Lock()
	s.token, s.user = resp.Token, resp.User.Username
	s.mu.Unlock()
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	err := s.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	s.mu.Lock()
	s.token, s.user = "", ""
	s.mu.Unlock()
	return err
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) Pending(ctx context.Context) ([]PendingPhoto, error) {
	var resp struct {
		Photos []PendingPhoto `json:"photos"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/admin/pending-photos", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Photos, nil
}

func (s *Session) Approve(ctx context.Context, photoID string) error {
	return s.do(ctx, http.MethodPatch, "/api/admin/photos/"+photoID+"/approve", nil, nil)
}

func (s *Session) Reject(ctx context.Context, photoID, reason string) error {
	return s.do(ctx, http.MethodPatch, "/api/admin/photos/"+photoID+"/reject", map[string]string{"reason": reason}, nil)
}

func (s *Session) DeletePhoto(ctx context.Context, photoID string) error {
	return s.do(ctx, http.MethodDelete, "/api/admin/photos/"+photoID, nil, nil)
}

func (s *Session) Stats(ctx context.Context) (*Stats, error) {
	var resp struct {
		Stats Stats `json:"stats"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/admin/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}
