package upload

import (
	"errors"
	"mime/multipart"
	"net/http"

	"flamingo/internal/middleware"
	"flamingo/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the standalone upload endpoints. Agencies use
// them to obtain a reference before attaching it to a payment or a
// reservation roster.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	uploads := rg.Group("/uploads", middleware.AgencyOnly())
	{
		uploads.POST("/proof", h.UploadProof)
		uploads.POST("/passport", h.UploadPassport)
	}
}

func (h *Handler) UploadProof(c *gin.Context) {
	h.upload(c, "file", h.store.SaveProof)
}

func (h *Handler) UploadPassport(c *gin.Context) {
	h.upload(c, "file", h.store.SavePassport)
}

func (h *Handler) upload(c *gin.Context, field string, save func(int64, *multipart.FileHeader) (string, error)) {
	file, err := c.FormFile(field)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return
	}

	url, err := save(middleware.Principal(c).ID, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "UPLOAD_REJECTED", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}
