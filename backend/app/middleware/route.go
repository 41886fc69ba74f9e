package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

type routeSetter interface {
	SetRoute(string)
}

// WithRoute tags the response writer with the matched mux route template so
// the logging and metrics middleware can report it.
func WithRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if setter, ok := w.(routeSetter); ok {
			setter.SetRoute(routeTemplate(r))
		}
		next.ServeHTTP(w, r)
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
