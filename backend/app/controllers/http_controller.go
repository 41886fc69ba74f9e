package controllers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPController struct {
	checks map[string]Pinger
}

func NewHTTPController(checks map[string]Pinger) *HTTPController {
	return &HTTPController{checks: checks}
}

func (c *HTTPController) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// Health pings every registered dependency and answers 503 if any fails.
func (c *HTTPController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	status := http.StatusOK
	deps := make(map[string]string, len(c.checks))
	for name, p := range c.checks {
		if err := p.Ping(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	writeJSON(w, status, map[string]any{"success": status == http.StatusOK, "status": http.StatusText(status), "deps": deps})
}
