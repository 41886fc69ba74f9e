package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"pupshare/backend/app/middleware"
	"pupshare/backend/app/services"
	"pupshare/backend/global"
)

// Every response is a JSON envelope. Successes carry {"success": true, ...payload};
// failures carry {"success": false, "error", "statusCode"}.

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func failMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, middleware.FailureBody(status, msg))
}

func statusFor(k services.Kind) int {
	switch k {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindInvalidState, services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail maps a service error onto its status code. Unclassified errors are
// logged and answered with a generic message.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)
	if kind == services.KindInternal {
		global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		failMsg(w, status, "Internal server error")
		return
	}
	failMsg(w, status, err.Error())
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return services.Invalid("Invalid JSON body")
}

// actor is the caller as seen by the services; zero for anonymous requests.
func actor(r *http.Request) services.Actor {
	if id := middleware.GetIdentity(r.Context()); id != nil {
		return services.Actor{ID: id.ID, IsAdmin: id.IsAdmin}
	}
	return services.Actor{}
}
