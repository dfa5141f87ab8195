package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"flamingo/internal/middleware"
	"flamingo/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	proofs  ProofUploader
}

func NewHandler(service *Service, proofs ProofUploader) *Handler {
	return &Handler{service: service, proofs: proofs}
}

// RegisterRoutes mounts the reservation endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", middleware.AgencyOnly(), h.Submit)
		reservations.GET("", h.List)
		// literal segments must be registered before the :id routes
		reservations.GET("/paid", middleware.AdminOnly(), h.ListPaid)
		reservations.GET("/unpaid", middleware.AdminOnly(), h.ListUnpaid)
		reservations.GET("/:id", h.Get)
		reservations.DELETE("/:id", h.Delete)
		reservations.POST("/:id/payment", middleware.AgencyOnly(), h.UploadProof)
		reservations.PUT("/:id/reject", middleware.AdminOnly(), h.Reject)
		reservations.PUT("/:id/reactivate", middleware.AdminOnly(), h.Reactivate)
		reservations.PATCH("/:id", middleware.AdminOnly(), h.Override)
		reservations.GET("/:id/overrides", middleware.AdminOnly(), h.OverrideHistory)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.service.Submit(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) List(c *gin.Context) {
	reservations, err := h.service.List(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reservations)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	r, err := h.service.Get(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Reservation deleted"})
}

func (h *Handler) UploadProof(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("paymentProof")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "paymentProof file is required")
		return
	}

	p := middleware.Principal(c)
	ref, err := h.proofs.SaveProof(p.ID, file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UPLOAD_FAILED", err.Error())
		return
	}

	r, err := h.service.AttachPaymentProof(c.Request.Context(), p, id, ref)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	r, err := h.service.Reject(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Reactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	r, err := h.service.Reactivate(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Override(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.service.Override(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) OverrideHistory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	audits, err := h.service.OverrideHistory(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, audits)
}

func (h *Handler) ListPaid(c *gin.Context) {
	reservations, err := h.service.ListPaid(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reservations)
}

func (h *Handler) ListUnpaid(c *gin.Context) {
	reservations, err := h.service.ListUnpaid(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reservations)
}

func (h *Handler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrOfferGone):
		response.Error(c, http.StatusNotFound, "OFFER_NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ErrCapacity):
		response.Error(c, http.StatusBadRequest, "NOT_ENOUGH_SEATS", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
