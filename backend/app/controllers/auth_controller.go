package controllers

import (
	"net/http"
	"pupshare/backend/app/dto"
	jwtutil "pupshare/backend/app/jwt"
	"pupshare/backend/app/middleware"
	"pupshare/backend/app/models"
	"pupshare/backend/app/services"
	"pupshare/backend/app/session"
	"pupshare/backend/global"

	"github.com/gorilla/mux"
)

type AuthController struct {
	Users    *services.UserService
	Signer   *jwtutil.Signer
	Revoker  session.Revoker
	MaxBytes int64
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer, revoker session.Revoker, maxBytes int64) *AuthController {
	return &AuthController{Users: users, Signer: signer, Revoker: revoker, MaxBytes: maxBytes}
}

func (c *AuthController) issue(w http.ResponseWriter, r *http.Request, status int, u *models.User, msg string) {
	token, _, err := c.Signer.Sign(u.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, status, map[string]any{"message": msg, "token": token, "user": u})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	u, err := c.Users.Register(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	global.Logger.Info().Str("user", u.ID).Str("username", u.Username).Msg("user registered")
	c.issue(w, r, http.StatusCreated, u, "User registered successfully")
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	u, err := c.Users.ValidateCredentials(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	c.issue(w, r, http.StatusOK, u, "Login successful")
}

// Logout revokes the presented token until it would have expired anyway.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims != nil && claims.ExpiresAt != nil && c.Revoker != nil {
		if err := c.Revoker.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			fail(w, r, err)
			return
		}
	}
	ok(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	u, err := c.Users.FindByID(r.Context(), actor(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"user": u})
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := c.Users.PublicProfile(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"user": profile})
}

func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch dto.ProfilePatch
	if err := decodeJSON(r, &patch); err != nil {
		fail(w, r, err)
		return
	}
	u, err := c.Users.UpdateProfile(r.Context(), actor(r).ID, patch)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Profile updated", "user": u})
}

func (c *AuthController) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxBytes)
	if err := r.ParseMultipartForm(c.MaxBytes); err != nil {
		failMsg(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		failMsg(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()
	u, err := c.Users.UpdateAvatar(r.Context(), actor(r).ID, file)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Avatar updated", "user": u})
}
