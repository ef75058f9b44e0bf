package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"toyshop/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UploadHandlers serves uploaded category icons from object storage.
type UploadHandlers struct {
	icons  services.IconStorage
	logger *zap.Logger
}

func NewUploadHandlers(icons services.IconStorage, logger *zap.Logger) *UploadHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandlers{icons: icons, logger: logger}
}

// GetUpload streams /uploads/:name. Upload names are unique, so responses are cacheable forever.
func (h *UploadHandlers) GetUpload(c echo.Context) error {
	name := c.Param("name")
	if !services.ValidIconName(name) {
		return echo.NewHTTPError(http.StatusNotFound, "Icon not found")
	}

	obj, err := h.icons.Open(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrIconNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Icon not found")
		}
		h.logger.Error("failed to open icon", zap.String("icon", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "Icon storage unavailable")
	}
	defer closeQuietly(obj.Body)

	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	header := c.Response().Header()
	header.Set("Cache-Control", "public, max-age=31536000, immutable")
	if obj.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
	}
	if !obj.ModTime.IsZero() {
		header.Set(echo.HeaderLastModified, obj.ModTime.UTC().Format(http.TimeFormat))
	}
	return c.Stream(http.StatusOK, contentType, obj.Body)
}
