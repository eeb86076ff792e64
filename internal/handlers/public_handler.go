package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/httperr"
	"github.com/saloncore/salon-scheduler/internal/models"
	"github.com/saloncore/salon-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated, slug-scoped booking surface.
type PublicHandler struct {
	db *gorm.DB

	repo                schedule.Repository
	requestBooking      *scheduling.RequestBooking
	resolveAvailability *scheduling.ResolveAvailability
	freeSlots           *scheduling.FreeSlots
}

func NewPublicHandler(
	db *gorm.DB,
	repo schedule.Repository,
	requestBooking *scheduling.RequestBooking,
	resolveAvailability *scheduling.ResolveAvailability,
	freeSlots *scheduling.FreeSlots,
) *PublicHandler {
	return &PublicHandler{
		db:                  db,
		repo:                repo,
		requestBooking:      requestBooking,
		resolveAvailability: resolveAvailability,
		freeSlots:           freeSlots,
	}
}

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

// ======================================================
// SALON INFO
// ======================================================

func (h *PublicHandler) GetSalon(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":     salon.Name,
		"slug":     salon.Slug,
		"phone":    salon.Phone,
		"address":  salon.Address,
		"timezone": salon.Timezone,
		"logo_url": salon.LogoURL,
	})
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("salon_id = ? AND active = true", salon.ID)
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id query param is required.")
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	result, err := h.resolveAvailability.Execute(c.Request.Context(), schedule.AvailabilityInput{
		SalonID:   salon.ID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_resolve_availability", "Failed to resolve availability.")
		}
		return
	}

	type publicEmployee struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Photo string `json:"photo_url,omitempty"`
		Start string `json:"start_time"`
		End   string `json:"end_time"`
	}

	items := make([]publicEmployee, 0, len(result))
	for _, r := range result {
		items = append(items, publicEmployee{
			ID:    r.Employee.ID,
			Name:  r.Employee.Name,
			Photo: r.Employee.PhotoURL,
			Start: string(r.Window.Start),
			End:   string(r.Window.End),
		})
	}

	c.JSON(http.StatusOK, items)
}

func (h *PublicHandler) FreeSlots(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	employeeID, err := strconv.ParseUint(c.Query("employee_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_employee_id", "employee_id query param is required.")
		return
	}
	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id query param is required.")
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.freeSlots.Execute(c.Request.Context(), scheduling.FreeSlotsInput{
		SalonID:    salon.ID,
		EmployeeID: uint(employeeID),
		ServiceID:  uint(serviceID),
		Date:       date,
	})
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_get_slots", "Failed to compute free slots.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// BOOKING
// ======================================================

type PublicBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	ServiceID  uint  `json:"service_id" binding:"required"`
	EmployeeID *uint `json:"employee_id"`

	Date string `json:"date" binding:"required"` // 2006-01-02
	Time string `json:"time" binding:"required"` // 15:04

	Notes string `json:"notes"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	start, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "Date must be YYYY-MM-DD and time HH:MM.")
		return
	}

	customer, err := h.repo.GetOrCreateCustomer(
		c.Request.Context(),
		salon.ID,
		strings.TrimSpace(req.CustomerName),
		strings.TrimSpace(req.CustomerPhone),
		strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_save_customer", "Failed to save customer.")
		return
	}

	ap, err := h.requestBooking.Execute(c.Request.Context(), scheduling.BookingInput{
		SalonID:    salon.ID,
		CustomerID: customer.ID,
		ServiceID:  req.ServiceID,
		EmployeeID: req.EmployeeID,
		Start:      start,
		Source:     models.SourceOnline,
		Notes:      req.Notes,
	})
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference":  ap.Reference,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}

// Lookup by public reference so a customer can check their booking.
func (h *PublicHandler) GetAppointmentByReference(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	ref := c.Param("reference")

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Employee").
		Where("salon_id = ? AND reference = ?", salon.ID, ref).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":  ap.Reference,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
		"service":    ap.Service.Name,
		"employee":   employeeName(ap.Employee),
	})
}

func employeeName(e *models.Employee) string {
	if e == nil {
		return ""
	}
	return e.Name
}
