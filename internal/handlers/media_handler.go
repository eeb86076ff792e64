package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/httperr"
	"github.com/saloncore/salon-scheduler/internal/media"
	"github.com/saloncore/salon-scheduler/internal/middleware"
	"github.com/saloncore/salon-scheduler/internal/models"
)

const (
	logoMaxDim  = 512
	photoMaxDim = 512
	maxUpload   = 8 << 20 // 8 MiB
)

// ======================================================
// HANDLER
// ======================================================

// MediaHandler normalizes uploaded images to webp and stores them in
// object storage. storage nil means uploads are disabled.
type MediaHandler struct {
	db      *gorm.DB
	storage *media.Storage
}

func NewMediaHandler(db *gorm.DB, storage *media.Storage) *MediaHandler {
	return &MediaHandler{
		db:      db,
		storage: storage,
	}
}

func (h *MediaHandler) readUpload(c *gin.Context, maxDim int) ([]byte, bool) {
	if h.storage == nil {
		httperr.Write(c, http.StatusNotImplemented, "uploads_disabled", "Object storage is not configured.")
		return nil, false
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Multipart field 'file' is required.")
		return nil, false
	}
	if file.Size > maxUpload {
		httperr.BadRequest(c, "file_too_large", "File exceeds the upload limit.")
		return nil, false
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Failed to read uploaded file.")
		return nil, false
	}
	defer src.Close()

	data, err := media.NormalizeImage(src, maxDim)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "File must be a valid JPEG, PNG or GIF image.")
		return nil, false
	}
	return data, true
}

// ======================================================
// SALON LOGO
// ======================================================

func (h *MediaHandler) UploadSalonLogo(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	data, ok := h.readUpload(c, logoMaxDim)
	if !ok {
		return
	}

	key := fmt.Sprintf("salons/%d/logo.webp", salon.ID)
	url, err := h.storage.Upload(c.Request.Context(), key, data, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Failed to store the image.")
		return
	}

	salon.LogoURL = url
	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Failed to update salon.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

// ======================================================
// EMPLOYEE PHOTO
// ======================================================

func (h *MediaHandler) UploadEmployeePhoto(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&employee).Error; err != nil {

		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	data, ok := h.readUpload(c, photoMaxDim)
	if !ok {
		return
	}

	key := fmt.Sprintf("salons/%d/employees/%d.webp", salonID, employee.ID)
	url, err := h.storage.Upload(c.Request.Context(), key, data, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Failed to store the image.")
		return
	}

	employee.PhotoURL = url
	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Failed to update employee.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
