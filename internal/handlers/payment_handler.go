package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/httperr"
	"github.com/saloncore/salon-scheduler/internal/middleware"
	"github.com/saloncore/salon-scheduler/internal/models"
	"github.com/saloncore/salon-scheduler/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

// PaymentHandler issues checkout links for appointments. gateway nil
// means payments are disabled.
type PaymentHandler struct {
	db      *gorm.DB
	gateway *payments.MercadoPago
}

func NewPaymentHandler(db *gorm.DB, gateway *payments.MercadoPago) *PaymentHandler {
	return &PaymentHandler{
		db:      db,
		gateway: gateway,
	}
}

func (h *PaymentHandler) CreatePaymentLink(c *gin.Context) {
	if h.gateway == nil {
		httperr.Write(c, http.StatusNotImplemented, "payments_disabled", "Payment gateway is not configured.")
		return
	}

	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if ap.Status == "cancelled" {
		httperr.BadRequest(c, "appointment_cancelled", "Cannot charge a cancelled appointment.")
		return
	}

	if ap.Service.Price <= 0 {
		httperr.BadRequest(c, "service_not_priced", "Service has no price to charge.")
		return
	}

	link, err := h.gateway.PaymentLink(c.Request.Context(), &ap)
	if err != nil {
		httperr.Internal(c, "payment_link_failed", "Failed to create payment link.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":   ap.Reference,
		"payment_url": link,
	})
}
