// README: Image proxy; streams imagery bytes so the maps key stays server-side.
package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripdraft/internal/maps"
	"tripdraft/internal/types"
)

// ImageSource fetches image bytes from the imagery capability.
type ImageSource interface {
	PlacePhoto(ctx context.Context, reference string, maxWidth int) (maps.Image, error)
	StreetView(ctx context.Context, p types.Point, width, height int) (maps.Image, error)
	StaticMap(ctx context.Context, center string, zoom, width, height int) ([]byte, error)
}

const (
	maxPhotoWidth = 1600
	imageCache    = "public, max-age=86400"
)

type ImageHandler struct {
	src     ImageSource
	timeout time.Duration
	logger  *slog.Logger
}

func NewImageHandler(src ImageSource, timeout time.Duration, logger *slog.Logger) *ImageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageHandler{src: src, timeout: timeout, logger: logger}
}

// Photo handles GET /api/images/photo?ref=&w=.
func (h *ImageHandler) Photo(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("ref"))
	if ref == "" {
		writeError(c, http.StatusBadRequest, "missing ref")
		return
	}
	width, err := strconv.Atoi(c.DefaultQuery("w", strconv.Itoa(maxPhotoWidth)))
	if err != nil || width < 1 || width > maxPhotoWidth {
		writeError(c, http.StatusBadRequest, "invalid width")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	img, err := h.src.PlacePhoto(ctx, ref, width)
	h.stream(c, "photo", img, err)
}

// StreetView handles GET /api/images/streetview?lat=&lng=.
func (h *ImageHandler) StreetView(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		writeError(c, http.StatusBadRequest, "invalid coordinates")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	img, err := h.src.StreetView(ctx, types.Point{Lat: lat, Lng: lng}, maps.PreviewWidth, maps.PreviewHeight)
	h.stream(c, "streetview", img, err)
}

// Static handles GET /api/images/static?center=.
func (h *ImageHandler) Static(c *gin.Context) {
	center := strings.TrimSpace(c.Query("center"))
	if center == "" {
		writeError(c, http.StatusBadRequest, "missing center")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	data, err := h.src.StaticMap(ctx, center, maps.StaticZoom, maps.PreviewWidth, maps.PreviewHeight)
	if err != nil {
		h.logger.Warn("image proxy failed", "kind", "static", "error", err)
		writeError(c, http.StatusBadGateway, "image unavailable")
		return
	}
	c.Header("Cache-Control", imageCache)
	c.Data(http.StatusOK, "image/png", data)
}

func (h *ImageHandler) stream(c *gin.Context, kind string, img maps.Image, err error) {
	if err != nil {
		h.logger.Warn("image proxy failed", "kind", kind, "error", err)
		writeError(c, http.StatusBadGateway, "image unavailable")
		return
	}
	defer img.Data.Close()

	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Header("Cache-Control", imageCache)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, img.Data); err != nil {
		h.logger.Warn("image proxy copy failed", "kind", kind, "error", err)
	}
}
