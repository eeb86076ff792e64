package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/httperr"
	"github.com/saloncore/salon-scheduler/internal/middleware"
	"github.com/saloncore/salon-scheduler/internal/models"
	"github.com/saloncore/salon-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	requestBooking    *scheduling.RequestBooking
	rescheduleBooking *scheduling.RescheduleBooking
	cancelBooking     *scheduling.CancelBooking
	confirm           *scheduling.ConfirmAppointment
	complete          *scheduling.CompleteAppointment
	markNoShow        *scheduling.MarkNoShow
	deleteAppointment *scheduling.DeleteAppointment
	listByDate        *scheduling.ListAppointmentsByDate
	listByMonth       *scheduling.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	requestBooking *scheduling.RequestBooking,
	rescheduleBooking *scheduling.RescheduleBooking,
	cancelBooking *scheduling.CancelBooking,
	confirm *scheduling.ConfirmAppointment,
	complete *scheduling.CompleteAppointment,
	markNoShow *scheduling.MarkNoShow,
	deleteAppointment *scheduling.DeleteAppointment,
	listByDate *scheduling.ListAppointmentsByDate,
	listByMonth *scheduling.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:                db,
		requestBooking:    requestBooking,
		rescheduleBooking: rescheduleBooking,
		cancelBooking:     cancelBooking,
		confirm:           confirm,
		complete:          complete,
		markNoShow:        markNoShow,
		deleteAppointment: deleteAppointment,
		listByDate:        listByDate,
		listByMonth:       listByMonth,
	}
}

func (h *AppointmentHandler) salonFromContext(c *gin.Context) (*models.Salon, bool) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

func actorID(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		id := v.(uint)
		return &id
	}
	return nil
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID uint  `json:"customer_id" binding:"required"`
	ServiceID  uint  `json:"service_id" binding:"required"`
	EmployeeID *uint `json:"employee_id"`

	Date string `json:"date" binding:"required"` // 2006-01-02
	Time string `json:"time" binding:"required"` // 15:04

	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	salon, ok := h.salonFromContext(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	start, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "Date must be YYYY-MM-DD and time HH:MM.")
		return
	}

	ap, err := h.requestBooking.Execute(c.Request.Context(), scheduling.BookingInput{
		SalonID:    salon.ID,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		EmployeeID: req.EmployeeID,
		Start:      start,
		Status:     req.Status,
		Source:     models.SourceStaff,
		Notes:      req.Notes,
		ActorID:    actorID(c),
	})
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
		}
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	salon, ok := h.salonFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	newStart, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "Date must be YYYY-MM-DD and time HH:MM.")
		return
	}

	ap, err := h.rescheduleBooking.Execute(c.Request.Context(), scheduling.RescheduleInput{
		SalonID:       salon.ID,
		AppointmentID: id,
		NewStart:      newStart,
		ActorID:       actorID(c),
	})
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_reschedule", "Failed to reschedule appointment.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(salonID uint, actor *uint, id uint) (*models.Appointment, error),
) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := run(salonID, actorID(c), id)
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(salonID uint, actor *uint, id uint) (*models.Appointment, error) {
		return h.confirm.Execute(c.Request.Context(), salonID, actor, id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(salonID uint, actor *uint, id uint) (*models.Appointment, error) {
		return h.cancelBooking.Execute(c.Request.Context(), salonID, actor, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(salonID uint, actor *uint, id uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), salonID, actor, id)
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, func(salonID uint, actor *uint, id uint) (*models.Appointment, error) {
		return h.markNoShow.Execute(c.Request.Context(), salonID, actor, id)
	})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteAppointment.Execute(c.Request.Context(), salonID, actorID(c), id); err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_delete_appointment", "Failed to delete appointment.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// LISTINGS
// ======================================================

func queryEmployeeID(c *gin.Context) (*uint, bool) {
	raw := c.Query("employee_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_employee_id", "employee_id must be numeric.")
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salon, ok := h.salonFromContext(c)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	employeeID, ok := queryEmployeeID(c)
	if !ok {
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), salon.ID, employeeID, date)
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		}
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "year and month query params are required.")
		return
	}

	employeeID, ok := queryEmployeeID(c)
	if !ok {
		return
	}

	items, err := h.listByMonth.Execute(c.Request.Context(), salonID, employeeID, year, month)
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		}
		return
	}

	c.JSON(http.StatusOK, items)
}

// ======================================================
// DETAIL
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Employee").
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, ap)
}
