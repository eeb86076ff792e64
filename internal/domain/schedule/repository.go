package schedule

import (
	"context"
	"time"

	"github.com/saloncore/salon-scheduler/internal/models"
)

// Repository is everything the scheduling engine needs from the store.
// Every method is salon-scoped; lookups outside the given salon behave as
// not-found.
type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Customer --------
	GetCustomer(
		ctx context.Context,
		salonID uint,
		customerID uint,
	) (*models.Customer, error)

	GetOrCreateCustomer(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Employee / eligibility --------
	GetEmployee(
		ctx context.Context,
		salonID uint,
		employeeID uint,
	) (*models.Employee, error)

	// Active employees of the salon holding an is_available capability
	// row for the service, ordered by name.
	ListCapableEmployees(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) ([]models.Employee, error)

	HasCapability(
		ctx context.Context,
		employeeID uint,
		serviceID uint,
	) (bool, error)

	// Returns (nil, nil) when no row exists for the weekday.
	GetWorkingHours(
		ctx context.Context,
		employeeID uint,
		weekday time.Weekday,
	) (*models.WorkingHours, error)

	IsOnLeave(
		ctx context.Context,
		employeeID uint,
		weekday time.Weekday,
	) (bool, error)

	// -------- Appointment (conflict scope) --------
	// Non-cancelled appointments of the salon overlapping [start,end),
	// scoped to the employee, or to unassigned appointments when
	// employeeID is nil. excludeID > 0 drops that appointment from the
	// scan (reschedule-in-place). Rows are locked for the enclosing
	// transaction.
	ListConflicting(
		ctx context.Context,
		salonID uint,
		employeeID *uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (CRUD) --------
	GetAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) error

	// -------- Appointment (read-only listing) --------
	ListAppointmentsForDay(
		ctx context.Context,
		salonID uint,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uint,
		employeeID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Transaction --------
	// Runs fn against a transaction-bound repository. The engine's
	// check-then-write sections always run inside InTx.
	InTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
