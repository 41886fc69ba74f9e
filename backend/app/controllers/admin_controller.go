package controllers

import (
	"net/http"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/services"
	"pupshare/backend/global"

	"github.com/gorilla/mux"
)

// AdminController is mounted behind RequireAdmin.
type AdminController struct{ Moderation *services.ModerationService }

func NewAdminController(m *services.ModerationService) *AdminController {
	return &AdminController{Moderation: m}
}

func (c *AdminController) Pending(w http.ResponseWriter, r *http.Request) {
	views, err := c.Moderation.ListPending(r.Context(), actor(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"photos": views})
}

func (c *AdminController) Approve(w http.ResponseWriter, r *http.Request) {
	photo, err := c.Moderation.Approve(r.Context(), mux.Vars(r)["id"], actor(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Photo approved and made public", "photo": photo})
}

func (c *AdminController) Reject(w http.ResponseWriter, r *http.Request) {
	var req dto.RejectRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		fail(w, r, services.Invalid("%s", err.Error()))
		return
	}
	photo, err := c.Moderation.Reject(r.Context(), mux.Vars(r)["id"], actor(r).ID, req.Reason)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Photo rejected", "photo": photo})
}

func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.Moderation.ListUsers(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"users": users})
}

func (c *AdminController) SetRole(w http.ResponseWriter, r *http.Request) {
	var req dto.RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		fail(w, r, services.Invalid("%s", err.Error()))
		return
	}
	u, err := c.Moderation.SetUserRole(r.Context(), mux.Vars(r)["id"], *req.IsAdmin)
	if err != nil {
		fail(w, r, err)
		return
	}
	global.Logger.Info().Str("user", u.ID).Bool("isAdmin", u.IsAdmin).Str("by", actor(r).ID).Msg("role changed")
	ok(w, http.StatusOK, map[string]any{"message": "User role updated", "user": u})
}

func (c *AdminController) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := c.Moderation.DeletePhoto(r.Context(), mux.Vars(r)["id"]); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Photo deleted"})
}

func (c *AdminController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := c.Moderation.DeleteComment(r.Context(), mux.Vars(r)["id"]); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Comment deleted"})
}

func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := c.Moderation.Stats(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"stats": st})
}
