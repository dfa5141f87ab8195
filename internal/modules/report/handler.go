package report

import (
	"errors"
	"net/http"
	"time"

	"flamingo/internal/middleware"
	"flamingo/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the reporting endpoints. All of them are admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports", middleware.AdminOnly())
	{
		reports.GET("/payments", h.PaymentSummary)
		reports.GET("/agencies", h.Agencies)
		reports.GET("/offers", h.Offers)
	}
}

func (h *Handler) PaymentSummary(c *gin.Context) {
	var period Period
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be YYYY-MM-DD")
			return
		}
		period.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be YYYY-MM-DD")
			return
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		period.To = &t
	}

	summary, err := h.service.PaymentSummary(c.Request.Context(), middleware.Principal(c), period)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) Agencies(c *gin.Context) {
	out, err := h.service.Agencies(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Offers(c *gin.Context) {
	out, err := h.service.Offers(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrForbidden) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
