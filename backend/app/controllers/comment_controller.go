package controllers

import (
	"net/http"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/services"

	"github.com/gorilla/mux"
)

type CommentController struct{ Comments *services.CommentService }

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{Comments: comments}
}

func (c *CommentController) List(w http.ResponseWriter, r *http.Request) {
	comments, err := c.Comments.List(r.Context(), mux.Vars(r)["photoId"])
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"comments": comments})
}

func (c *CommentController) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	comment, err := c.Comments.Add(r.Context(), mux.Vars(r)["photoId"], actor(r).ID, req.Content)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, map[string]any{"message": "Comment added", "comment": comment})
}

func (c *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	comment, err := c.Comments.Update(r.Context(), mux.Vars(r)["commentId"], actor(r).ID, req.Content)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Comment updated", "comment": comment})
}

func (c *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Comments.Delete(r.Context(), mux.Vars(r)["commentId"], actor(r)); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Comment deleted"})
}
