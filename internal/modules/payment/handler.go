package payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"flamingo/internal/middleware"
	"flamingo/internal/pkg/response"
	"flamingo/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the payment endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Create)
		payments.GET("", middleware.AdminOnly(), h.List)
		payments.GET("/:id", h.GetByID)
		payments.PUT("/:id/validate", middleware.AdminOnly(), h.Validate)
		payments.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	}

	// settle a reservation without a pre-existing payment record
	rg.POST("/reservations/:id/validate", middleware.AdminOnly(), h.DirectValidate)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	pay, err := h.service.Create(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, pay)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	pay, err := h.service.GetByID(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, pay)
}

func (h *Handler) List(c *gin.Context) {
	filters := repository.PaymentFilters{
		Status: c.Query("status"),
		Method: c.Query("method"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be YYYY-MM-DD")
			return
		}
		filters.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be YYYY-MM-DD")
			return
		}
		// make the upper bound inclusive of the whole day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filters.To = &t
	}
	if agency := c.Query("agency"); agency != "" {
		id, err := strconv.ParseInt(agency, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid agency ID")
			return
		}
		filters.AgencyID = id
	}

	payments, err := h.service.List(c.Request.Context(), middleware.Principal(c), filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) Validate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	var req ValidatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.service.Validate(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, r)
}

func (h *Handler) DirectValidate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	// the body is optional: without a manual amount the endpoint only
	// re-aggregates existing approved payments
	var req DirectValidateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	r, err := h.service.DirectValidate(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		if errors.Is(err, ErrInsufficient) {
			// partial state was persisted; surface it with the refusal
			response.ErrorWithDetails(c, http.StatusBadRequest, "INSUFFICIENT_PAYMENT", err.Error(), r)
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Payment deleted"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrProofRequired):
		response.Error(c, http.StatusBadRequest, "PROOF_REQUIRED", err.Error())
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, "ALREADY_VALIDATED", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
