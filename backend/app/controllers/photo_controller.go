package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/models"
	"pupshare/backend/app/services"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

type PhotoController struct {
	Photos     *services.PhotoService
	Social     *services.SocialService
	Tags       *services.TagService
	Visibility *services.VisibilityService
	MaxBytes   int64
}

func NewPhotoController(photos *services.PhotoService, social *services.SocialService, tags *services.TagService, visibility *services.VisibilityService, maxBytes int64) *PhotoController {
	return &PhotoController{Photos: photos, Social: social, Tags: tags, Visibility: visibility, MaxBytes: maxBytes}
}

func (c *PhotoController) Gallery(w http.ResponseWriter, r *http.Request) {
	views, err := c.Social.Gallery(r.Context(), actor(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"photos": views})
}

func (c *PhotoController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.Photos.Get(r.Context(), mux.Vars(r)["id"], actor(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"photo": view})
}

func (c *PhotoController) MyPhotos(w http.ResponseWriter, r *http.Request) {
	views, err := c.Photos.MyPhotos(r.Context(), actor(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"photos": views})
}

func (c *PhotoController) Liked(w http.ResponseWriter, r *http.Request) {
	views, err := c.Social.LikedPhotos(r.Context(), actor(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"photos": views})
}

// Upload accepts a multipart form with an "image" file, or a JSON or form
// body naming an imageUrl.
func (c *PhotoController) Upload(w http.ResponseWriter, r *http.Request) {
	var (
		in   dto.UploadPhoto
		file io.Reader
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxBytes)
		if err := r.ParseMultipartForm(c.MaxBytes); err != nil {
			failMsg(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		in = dto.UploadPhoto{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Category:    r.FormValue("category"),
			ImageURL:    r.FormValue("imageUrl"),
			Tags:        formTags(r.MultipartForm.Value["tags"]),
		}
		if f, _, err := r.FormFile("image"); err == nil {
			defer f.Close()
			file = f
		}
	} else {
		var body struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Category    string   `json:"category"`
			Tags        []string `json:"tags"`
			ImageURL    string   `json:"imageUrl"`
		}
		if err := decodeJSON(r, &body); err != nil {
			fail(w, r, err)
			return
		}
		in = dto.UploadPhoto{Title: body.Title, Description: body.Description, Category: body.Category, Tags: body.Tags, ImageURL: body.ImageURL}
	}
	photo, err := c.Photos.Upload(r.Context(), actor(r).ID, in, file)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, map[string]any{"message": "Photo uploaded successfully", "photo": photo})
}

// formTags accepts either a single JSON array string or repeated fields.
func formTags(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var tags []string
		if err := json.Unmarshal([]byte(values[0]), &tags); err == nil {
			return tags
		}
	}
	return values
}

func (c *PhotoController) Update(w http.ResponseWriter, r *http.Request) {
	var patch dto.PhotoPatch
	if err := decodeJSON(r, &patch); err != nil {
		fail(w, r, err)
		return
	}
	photo, err := c.Photos.Update(r.Context(), mux.Vars(r)["id"], actor(r).ID, patch)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Photo updated", "photo": photo})
}

func (c *PhotoController) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req dto.VisibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	photo, err := c.Visibility.RequestVisibilityChange(r.Context(), mux.Vars(r)["id"], actor(r).ID, req.MakePublic)
	if err != nil {
		fail(w, r, err)
		return
	}
	msg := "Photo is now private"
	if req.MakePublic {
		msg = "Photo submitted for approval"
	}
	ok(w, http.StatusOK, map[string]any{"message": msg, "photo": photo})
}

func (c *PhotoController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Visibility.DeletePhoto(r.Context(), mux.Vars(r)["id"], actor(r)); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Photo deleted successfully"})
}

func (c *PhotoController) Like(w http.ResponseWriter, r *http.Request) {
	count, err := c.Social.Like(r.Context(), actor(r).ID, mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, map[string]any{"message": "Photo liked", "likeCount": count, "isLiked": true})
}

func (c *PhotoController) Unlike(w http.ResponseWriter, r *http.Request) {
	count, err := c.Social.Unlike(r.Context(), actor(r).ID, mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"message": "Photo unliked", "likeCount": count, "isLiked": false})
}

func (c *PhotoController) ByCategory(w http.ResponseWriter, r *http.Request) {
	photos, err := c.Tags.PhotosByCategory(r.Context(), mux.Vars(r)["category"])
	c.writePublic(w, r, photos, err)
}

func (c *PhotoController) ByTag(w http.ResponseWriter, r *http.Request) {
	photos, err := c.Tags.PhotosByTag(r.Context(), mux.Vars(r)["tag"])
	c.writePublic(w, r, photos, err)
}

func (c *PhotoController) writePublic(w http.ResponseWriter, r *http.Request, photos []models.Photo, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}
	views, err := c.Social.Enrich(r.Context(), photos, actor(r).ID, true)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"photos": views})
}

func (c *PhotoController) AllTags(w http.ResponseWriter, r *http.Request) {
	tags, err := c.Tags.AllTags(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"tags": tags})
}

func (c *PhotoController) PopularTags(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tags, err := c.Tags.PopularTags(r.Context(), limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, map[string]any{"tags": tags})
}
