package handler

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// maxUploadSize caps image uploads at 5 MB.
const maxUploadSize = 5 << 20

// MediaHandler stores thumbnails and profile photos in the object store.
type MediaHandler struct {
	store ports.ObjectStore
}

func NewMediaHandler(store ports.ObjectStore) *MediaHandler {
	return &MediaHandler{store: store}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /v1/media: a multipart image, at most 5 MB, stored
// under blog-images/<unix>-<name>. The returned URL is what articles and
// profiles reference; a later metadata-write failure leaves an orphaned
// blob, not a broken reference.
//
// @Summary      Upload an image
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file (max 5 MB)"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/media [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "object storage not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds the 5 MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "only images are accepted")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	key := fmt.Sprintf("blog-images/%d-%s", time.Now().Unix(), path.Base(fileHeader.Filename))
	url, err := h.store.Put(c.Request().Context(), key, contentType, src, fileHeader.Size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}
