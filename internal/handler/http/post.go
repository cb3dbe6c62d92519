package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Sujith0604/Blog/internal/middleware"
	"github.com/Sujith0604/Blog/internal/service"
	"github.com/Sujith0604/Blog/internal/upload"
)

// PostHandler serves the post CRUD endpoints. Create and update accept
// multipart bodies so the cover image rides along with the text fields.
type PostHandler struct {
	postService *service.PostService
	uploads     *upload.Store
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(postService *service.PostService, uploads *upload.Store) *PostHandler {
	return &PostHandler{postService: postService, uploads: uploads}
}

// Create handles POST /createpost: multipart fields title/summary/content
// plus the required "file" part; 201 with the created post.
func (h *PostHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.CtxUserID).(uint)

	in := service.PostInput{
		Title:   c.PostForm("title"),
		Summary: c.PostForm("summary"),
		Content: c.PostForm("content"),
	}

	fh, err := c.FormFile("file")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "cover file is required")
		return
	}
	cover, err := h.uploads.Save(fh)
	if err != nil {
		logrus.WithError(err).Error("Handler.CreatePost: failed to store cover upload")
		ErrorResponse(c, http.StatusInternalServerError, "could not store uploaded file")
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, in, cover)
	if err != nil {
		if errors.Is(err, service.ErrInternalServer) {
			ErrorResponse(c, http.StatusInternalServerError, "could not create post")
			return
		}
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, post)
}

// List handles GET /createpost: the 20 newest posts with authors populated.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "could not list posts")
		return
	}
	SuccessResponse(c, http.StatusOK, posts)
}

// Get handles GET /singlepost/:id.
func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "could not fetch post")
		return
	}

	SuccessResponse(c, http.StatusOK, post)
}

// Update handles PATCH /createpost: multipart fields id/title/summary/
// content with an optional replacement "file". Only the author may update.
func (h *PostHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.CtxUserID).(uint)

	id, err := parseID(c.PostForm("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return
	}

	in := service.PostInput{
		Title:   c.PostForm("title"),
		Summary: c.PostForm("summary"),
		Content: c.PostForm("content"),
	}

	// The cover only changes when a new file was uploaded.
	var cover string
	if fh, err := c.FormFile("file"); err == nil {
		cover, err = h.uploads.Save(fh)
		if err != nil {
			logrus.WithError(err).Error("Handler.UpdatePost: failed to store cover upload")
			ErrorResponse(c, http.StatusInternalServerError, "could not store uploaded file")
			return
		}
	}

	post, err := h.postService.Update(c.Request.Context(), id, userID, in, cover)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAuthor):
			ErrorResponse(c, http.StatusForbidden, err.Error())
		default:
			ErrorResponse(c, http.StatusInternalServerError, "could not update post")
		}
		return
	}

	SuccessResponse(c, http.StatusOK, post)
}

// Delete handles DELETE /createpost/:id. Authorship is enforced the same
// way as on update; the author gets 204.
func (h *PostHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.CtxUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAuthor):
			ErrorResponse(c, http.StatusForbidden, err.Error())
		default:
			ErrorResponse(c, http.StatusInternalServerError, "could not delete post")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
