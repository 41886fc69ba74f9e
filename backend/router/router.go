package router

import (
	"encoding/json"
	"net/http"
	"pupshare/backend/app/controllers"
	"pupshare/backend/app/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers struct {
	HTTP     *controllers.HTTPController
	Auth     *controllers.AuthController
	Photos   *controllers.PhotoController
	Comments *controllers.CommentController
	Admin    *controllers.AdminController
	Socket   *controllers.SocketController
}

type Options struct {
	UploadDir    string
	UploadPrefix string
	CORSOrigin   string
	// Limiter guards the auth endpoints; nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

func NewRouter(c Controllers, mw *middleware.Auth, opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.WithRoute, middleware.Metrics)

	r.HandleFunc("/ping", c.HTTP.Ping).Methods(http.MethodGet)
	r.HandleFunc("/health", c.HTTP.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	if opts.UploadDir != "" {
		r.PathPrefix(opts.UploadPrefix).Handler(http.StripPrefix(opts.UploadPrefix, http.FileServer(http.Dir(opts.UploadDir))))
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/ws", mw.RequireAuth(http.HandlerFunc(c.Socket.Serve)))

	// only credential endpoints are throttled
	limited := func(h http.HandlerFunc) http.Handler {
		if opts.Limiter == nil {
			return h
		}
		return opts.Limiter.Middleware(h)
	}
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/register", limited(c.Auth.Register)).Methods(http.MethodPost)
	auth.Handle("/login", limited(c.Auth.Login)).Methods(http.MethodPost)
	auth.Handle("/logout", mw.RequireAuth(http.HandlerFunc(c.Auth.Logout))).Methods(http.MethodPost)
	auth.Handle("/me", mw.RequireAuth(http.HandlerFunc(c.Auth.Me))).Methods(http.MethodGet)
	auth.HandleFunc("/profile/{userId}", c.Auth.Profile).Methods(http.MethodGet)
	auth.Handle("/profile", mw.RequireAuth(http.HandlerFunc(c.Auth.UpdateProfile))).Methods(http.MethodPut)
	auth.Handle("/avatar", mw.RequireAuth(http.HandlerFunc(c.Auth.UploadAvatar))).Methods(http.MethodPost)

	// fixed paths first so they are not captured by {id}
	photos := api.PathPrefix("/photos").Subrouter()
	photos.Handle("", mw.OptionalAuth(http.HandlerFunc(c.Photos.Gallery))).Methods(http.MethodGet)
	photos.Handle("/my-photos", mw.RequireAuth(http.HandlerFunc(c.Photos.MyPhotos))).Methods(http.MethodGet)
	photos.Handle("/liked", mw.RequireAuth(http.HandlerFunc(c.Photos.Liked))).Methods(http.MethodGet)
	photos.Handle("/upload", mw.RequireAuth(http.HandlerFunc(c.Photos.Upload))).Methods(http.MethodPost)
	photos.HandleFunc("/tags", c.Photos.AllTags).Methods(http.MethodGet)
	photos.HandleFunc("/tags/popular", c.Photos.PopularTags).Methods(http.MethodGet)
	photos.Handle("/category/{category}", mw.OptionalAuth(http.HandlerFunc(c.Photos.ByCategory))).Methods(http.MethodGet)
	photos.Handle("/tag/{tag}", mw.OptionalAuth(http.HandlerFunc(c.Photos.ByTag))).Methods(http.MethodGet)
	photos.Handle("/{id}", mw.OptionalAuth(http.HandlerFunc(c.Photos.Get))).Methods(http.MethodGet)
	photos.Handle("/{id}", mw.RequireAuth(http.HandlerFunc(c.Photos.Update))).Methods(http.MethodPatch)
	photos.Handle("/{id}", mw.RequireAuth(http.HandlerFunc(c.Photos.Delete))).Methods(http.MethodDelete)
	photos.Handle("/{id}/visibility", mw.RequireAuth(http.HandlerFunc(c.Photos.SetVisibility))).Methods(http.MethodPatch)
	photos.Handle("/{id}/like", mw.RequireAuth(http.HandlerFunc(c.Photos.Like))).Methods(http.MethodPost)
	photos.Handle("/{id}/like", mw.RequireAuth(http.HandlerFunc(c.Photos.Unlike))).Methods(http.MethodDelete)

	comments := api.PathPrefix("/comments").Subrouter()
	comments.HandleFunc("/{photoId}", c.Comments.List).Methods(http.MethodGet)
	comments.Handle("/{photoId}", mw.RequireAuth(http.HandlerFunc(c.Comments.Add))).Methods(http.MethodPost)
	comments.Handle("/{commentId}", mw.RequireAuth(http.HandlerFunc(c.Comments.Update))).Methods(http.MethodPut)
	comments.Handle("/{commentId}", mw.RequireAuth(http.HandlerFunc(c.Comments.Delete))).Methods(http.MethodDelete)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/pending-photos", c.Admin.Pending).Methods(http.MethodGet)
	admin.HandleFunc("/users", c.Admin.Users).Methods(http.MethodGet)
	admin.HandleFunc("/stats", c.Admin.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/photos/{id}/approve", c.Admin.Approve).Methods(http.MethodPatch)
	admin.HandleFunc("/photos/{id}/reject", c.Admin.Reject).Methods(http.MethodPatch)
	admin.HandleFunc("/photos/{id}", c.Admin.DeletePhoto).Methods(http.MethodDelete)
	admin.HandleFunc("/comments/{id}", c.Admin.DeleteComment).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/role", c.Admin.SetRole).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(middleware.FailureBody(http.StatusNotFound, "Route not found"))
	})

	return middleware.CORS(opts.CORSOrigin)(r)
}
