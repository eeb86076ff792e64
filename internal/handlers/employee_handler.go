package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/httperr"
	"github.com/saloncore/salon-scheduler/internal/middleware"
	"github.com/saloncore/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

func (h *EmployeeHandler) employeeInSalon(c *gin.Context) (*models.Employee, bool) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&employee).Error; err != nil {

		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return nil, false
	}
	return &employee, true
}

// ======================================================
// CRUD
// ======================================================

type CreateEmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type UpdateEmployeeRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (h *EmployeeHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)

	if activeStr := strings.TrimSpace(c.Query("active")); activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Failed to list employees.")
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	employee := models.Employee{
		SalonID: salonID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Active:  true,
	}

	if err := h.db.Create(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Failed to create employee.")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	employee, ok := h.employeeInSalon(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Email != nil {
		employee.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.db.Save(employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Failed to update employee.")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// ======================================================
// WORKING HOURS
// ======================================================

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (d WorkingDayConfig) valid() bool {
	if !d.Active {
		return true
	}
	window := schedule.Window{
		Start: schedule.TimeOfDay(d.StartTime),
		End:   schedule.TimeOfDay(d.EndTime),
	}
	if !window.Valid() {
		return false
	}
	if d.BreakStart != "" || d.BreakEnd != "" {
		br := schedule.Window{
			Start: schedule.TimeOfDay(d.BreakStart),
			End:   schedule.TimeOfDay(d.BreakEnd),
		}
		if !br.Valid() {
			return false
		}
	}
	return true
}

func (h *EmployeeHandler) GetWorkingHours(c *gin.Context) {
	employee, ok := h.employeeInSalon(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("employee_id = ?", employee.ID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Failed to load working hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *EmployeeHandler) UpdateWorkingHours(c *gin.Context) {
	employee, ok := h.employeeInSalon(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	for _, d := range req.Days {
		if !d.valid() {
			httperr.BadRequest(c, "invalid_working_window", "Working windows must be valid HH:MM ranges.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHours{
				EmployeeID: employee.ID,
				Weekday:    d.Weekday,
				Active:     d.Active,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				BreakStart: d.BreakStart,
				BreakEnd:   d.BreakEnd,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Failed to save working hours.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// LEAVE DAYS (recurring weekdays)
// ======================================================

type LeaveDaysUpdateRequest struct {
	// Weekdays 0 (Sunday) .. 6 (Saturday).
	Weekdays []int `json:"weekdays"`
}

func (h *EmployeeHandler) GetLeaveDays(c *gin.Context) {
	employee, ok := h.employeeInSalon(c)
	if !ok {
		return
	}

	var days []models.LeaveDay
	if err := h.db.
		Where("employee_id = ?", employee.ID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		httperr.Internal(c, "failed_to_get_leave_days", "Failed to load leave days.")
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *EmployeeHandler) UpdateLeaveDays(c *gin.Context) {
	employee, ok := h.employeeInSalon(c)
	if !ok {
		return
	}

	var req LeaveDaysUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	seen := map[int]bool{}
	for _, wd := range req.Weekdays {
		if wd < 0 || wd > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Weekdays must be between 0 and 6.")
			return
		}
		seen[wd] = true
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&models.LeaveDay{}).Error; err != nil {
			return err
		}

		var toCreate []models.LeaveDay
		for wd := range seen {
			toCreate = append(toCreate, models.LeaveDay{
				EmployeeID: employee.ID,
				Weekday:    wd,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_leave_days", "Failed to save leave days.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// SERVICE CAPABILITIES
// ======================================================

type CapabilityConfig struct {
	ServiceID   uint `json:"service_id" binding:"required"`
	IsAvailable bool `json:"is_available"`
}

type CapabilitiesUpdateRequest struct {
	Services []CapabilityConfig `json:"services" binding:"required"`
}

func (h *EmployeeHandler) GetCapabilities(c *gin.Context) {
	employee, ok := h.employeeInSalon(c)
	if !ok {
		return
	}

	var caps []models.EmployeeService
	if err := h.db.
		Where("employee_id = ?", employee.ID).
		Order("service_id ASC").
		Find(&caps).Error; err != nil {

		httperr.Internal(c, "failed_to_get_capabilities", "Failed to load service capabilities.")
		return
	}

	c.JSON(http.StatusOK, caps)
}

func (h *EmployeeHandler) UpdateCapabilities(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	employee, ok := h.employeeInSalon(c)
	if !ok {
		return
	}

	var req CapabilitiesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	// every referenced service must live in this salon
	for _, sc := range req.Services {
		var count int64
		h.db.Model(&models.Service{}).
			Where("id = ? AND salon_id = ?", sc.ServiceID, salonID).
			Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "service_not_found", "Service "+strconv.Itoa(int(sc.ServiceID))+" not found in this salon.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&models.EmployeeService{}).Error; err != nil {
			return err
		}

		var toCreate []models.EmployeeService
		for _, sc := range req.Services {
			toCreate = append(toCreate, models.EmployeeService{
				EmployeeID:  employee.ID,
				ServiceID:   sc.ServiceID,
				IsAvailable: sc.IsAvailable,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_capabilities", "Failed to save service capabilities.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
