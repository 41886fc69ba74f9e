package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"pupshare/backend/global"
	"time"
)

// StartHTTPServer listens in the background and returns the server so the
// caller can shut it down.
func StartHTTPServer(host string, port int, handler http.Handler) (*http.Server, error) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			global.Logger.Error().Err(err).Str("addr", addr).Msg("http server stopped")
		}
	}()
	global.Logger.Info().Str("addr", addr).Msg("http server listening")
	return srv, nil
}

// Shutdown waits up to timeout for in-flight requests.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
