package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ScheduleGormRepository) GetCustomer(
	ctx context.Context,
	salonID uint,
	customerID uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", customerID, salonID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *ScheduleGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	// Two public bookings can race here; the partial unique index on
	// (salon_id, phone) plus DO UPDATE collapses them onto one row and
	// returns its id.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "salon_id"}, {Name: "phone"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "phone <> ''"}}},
			DoUpdates:   clause.Assignments(map[string]interface{}{"name": name}),
		}).
		Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Employee / eligibility
// --------------------------------------------------

func (r *ScheduleGormRepository) GetEmployee(
	ctx context.Context,
	salonID uint,
	employeeID uint,
) (*models.Employee, error) {

	var employee models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", employeeID, salonID).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *ScheduleGormRepository) ListCapableEmployees(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) ([]models.Employee, error) {

	var employees []models.Employee
	if err := r.db.WithContext(ctx).
		Joins(
			"JOIN employee_services es ON es.employee_id = employees.id AND es.service_id = ? AND es.is_available = true",
			serviceID,
		).
		Where("employees.salon_id = ? AND employees.active = true", salonID).
		Order("employees.name ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *ScheduleGormRepository) HasCapability(
	ctx context.Context,
	employeeID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeService{}).
		Where(
			"employee_id = ? AND service_id = ? AND is_available = true",
			employeeID, serviceID,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ScheduleGormRepository) GetWorkingHours(
	ctx context.Context,
	employeeID uint,
	weekday time.Weekday,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND weekday = ?", employeeID, int(weekday)).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *ScheduleGormRepository) IsOnLeave(
	ctx context.Context,
	employeeID uint,
	weekday time.Weekday,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeaveDay{}).
		Where("employee_id = ? AND weekday = ?", employeeID, int(weekday)).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointment (conflict scope)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListConflicting(
	ctx context.Context,
	salonID uint,
	employeeID *uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"salon_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			salonID, string(schedule.StatusCancelled), end, start,
		)

	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	} else {
		q = q.Where("employee_id IS NULL")
	}

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Order("start_time ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}

	return conflicts, nil
}

// --------------------------------------------------
// Appointment (CRUD)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Employee").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		Delete(&models.Appointment{}).Error
}

// --------------------------------------------------
// Appointment (read-only listing)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	salonID uint,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"salon_id = ? AND employee_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			salonID, employeeID, string(schedule.StatusCancelled), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	salonID uint,
	employeeID *uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Employee").
		Where(
			"salon_id = ? AND start_time >= ? AND start_time < ?",
			salonID, start, end,
		)

	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *ScheduleGormRepository) InTx(
	ctx context.Context,
	fn func(schedule.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
