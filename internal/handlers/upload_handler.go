package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/middleware"
	"github.com/salaoflow/salon-scheduler/internal/models"
	"github.com/salaoflow/salon-scheduler/internal/uploads"
)

const maxUploadBytes = 8 << 20 // 8MB

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type UploadHandler struct {
	db       *gorm.DB
	repo     domain.Repository
	uploader *uploads.Uploader
}

func NewUploadHandler(db *gorm.DB, repo domain.Repository, uploader *uploads.Uploader) *UploadHandler {
	return &UploadHandler{db: db, repo: repo, uploader: uploader}
}

////////////////////////////////////////////////////////
// SALON LOGO
////////////////////////////////////////////////////////

func (h *UploadHandler) SalonLogo(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), "logos", file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	salon, err := h.repo.GetSalonByID(c.Request.Context(), salonID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	salon.LogoURL = url
	if err := h.repo.UpdateSalon(c.Request.Context(), salon); err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao atualizar salão.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

////////////////////////////////////////////////////////
// SERVICE IMAGE
////////////////////////////////////////////////////////

func (h *UploadHandler) ServiceImage(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), "services", file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	svc.ImageURL = url
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

////////////////////////////////////////////////////////
// helpers
////////////////////////////////////////////////////////

func (h *UploadHandler) openUpload(c *gin.Context) (multipart.File, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return nil, false
	}
	if header.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Arquivo muito grande (máx. 8MB).")
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao ler arquivo.")
		return nil, false
	}
	return file, true
}
