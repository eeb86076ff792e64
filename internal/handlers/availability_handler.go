package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/httperr"
	"github.com/saloncore/salon-scheduler/internal/middleware"
	"github.com/saloncore/salon-scheduler/internal/models"
	"github.com/saloncore/salon-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db *gorm.DB

	resolveAvailability *scheduling.ResolveAvailability
	checkConflict       *scheduling.CheckConflict
	freeSlots           *scheduling.FreeSlots
}

func NewAvailabilityHandler(
	db *gorm.DB,
	resolveAvailability *scheduling.ResolveAvailability,
	checkConflict *scheduling.CheckConflict,
	freeSlots *scheduling.FreeSlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:                  db,
		resolveAvailability: resolveAvailability,
		checkConflict:       checkConflict,
		freeSlots:           freeSlots,
	}
}

func (h *AvailabilityHandler) salonFromContext(c *gin.Context) (*models.Salon, bool) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

// ======================================================
// RESOLVE: who can take this service on this date
// ======================================================

type availabilityItem struct {
	Employee models.Employee `json:"employee"`
	Start    string          `json:"start_time"`
	End      string          `json:"end_time"`
}

func (h *AvailabilityHandler) Resolve(c *gin.Context) {
	salon, ok := h.salonFromContext(c)
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

	employeeID, ok := queryEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.resolveAvailability.Execute(c.Request.Context(), schedule.AvailabilityInput{
		SalonID:    salon.ID,
		ServiceID:  uint(serviceID),
		EmployeeID: employeeID,
		Date:       date,
	})
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_resolve_availability", "Failed to resolve availability.")
		}
		return
	}

	items := make([]availabilityItem, 0, len(result))
	for _, r := range result {
		items = append(items, availabilityItem{
			Employee: r.Employee,
			Start:    string(r.Window.Start),
			End:      string(r.Window.End),
		})
	}

	c.JSON(http.StatusOK, items)
}

// ======================================================
// CONFLICT PROBE
// ======================================================

func (h *AvailabilityHandler) CheckConflict(c *gin.Context) {
	salon, ok := h.salonFromContext(c)
	if !ok {
		return
	}

	start, err := parseDateTimeInSalon(salon, c.Query("date"), c.Query("start"))
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "date must be YYYY-MM-DD and start HH:MM.")
		return
	}
	end, err := parseDateTimeInSalon(salon, c.Query("date"), c.Query("end"))
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "end must be HH:MM.")
		return
	}

	employeeID, ok := queryEmployeeID(c)
	if !ok {
		return
	}

	var excludeID uint
	if raw := c.Query("exclude_appointment_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_exclude_id", "exclude_appointment_id must be numeric.")
			return
		}
		excludeID = uint(v)
	}

	result, err := h.checkConflict.Execute(c.Request.Context(), scheduling.ConflictInput{
		SalonID:              salon.ID,
		EmployeeID:           employeeID,
		Start:                start,
		End:                  end,
		ExcludeAppointmentID: excludeID,
	})
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_check_conflict", "Failed to check conflicts.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conflict":        result.Conflict,
		"conflicting_ids": result.ConflictingIDs,
	})
}

// ======================================================
// FREE SLOTS
// ======================================================

func (h *AvailabilityHandler) FreeSlots(c *gin.Context) {
	salon, ok := h.salonFromContext(c)
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
