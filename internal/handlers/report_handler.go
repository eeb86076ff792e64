package handlers

import (
	"net/http"

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

type ReportHandler struct {
	db     *gorm.DB
	report *scheduling.AppointmentReport
}

func NewReportHandler(db *gorm.DB, report *scheduling.AppointmentReport) *ReportHandler {
	return &ReportHandler{
		db:     db,
		report: report,
	}
}

func (h *ReportHandler) Appointments(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	from, err := parseDateInSalon(&salon, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
		return
	}
	to, err := parseDateInSalon(&salon, c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
		return
	}
	// inclusive end date
	to = to.AddDate(0, 0, 1)

	employeeID, ok := queryEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.report.Execute(c.Request.Context(), salonID, employeeID, from, to)
	if err != nil {
		if !httperr.WriteRejection(c, err) {
			httperr.Internal(c, "failed_to_build_report", "Failed to build report.")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
