package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/models"
)

// In-memory schedule.Repository. InTx serializes on a mutex the way the
// real implementation serializes on row locks, so concurrent booking
// attempts really do race against each other in tests.
type fakeRepo struct {
	mu sync.Mutex

	salons       map[uint]*models.Salon
	services     map[uint]*models.Service
	customers    map[uint]*models.Customer
	employees    map[uint]*models.Employee
	caps         map[[2]uint]bool // employee, service
	hours        map[[2]uint]*models.WorkingHours
	leave        map[[2]uint]bool
	appointments map[uint]*models.Appointment

	nextID uint
}

var _ schedule.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:       map[uint]*models.Salon{},
		services:     map[uint]*models.Service{},
		customers:    map[uint]*models.Customer{},
		employees:    map[uint]*models.Employee{},
		caps:         map[[2]uint]bool{},
		hours:        map[[2]uint]*models.WorkingHours{},
		leave:        map[[2]uint]bool{},
		appointments: map[uint]*models.Appointment{},
	}
}

// -------- seeding helpers --------

func (r *fakeRepo) seedSalon(id uint, tz string) *models.Salon {
	s := &models.Salon{ID: id, Name: "Salon", Slug: "salon", Timezone: tz}
	r.salons[id] = s
	return s
}

func (r *fakeRepo) seedService(id, salonID uint, name string, durationMin int, price float64) *models.Service {
	s := &models.Service{ID: id, SalonID: salonID, Name: name, DurationMin: durationMin, Price: price, Active: true}
	r.services[id] = s
	return s
}

func (r *fakeRepo) seedCustomer(id, salonID uint, name string) *models.Customer {
	c := &models.Customer{ID: id, SalonID: salonID, Name: name, Phone: "555"}
	r.customers[id] = c
	return c
}

func (r *fakeRepo) seedEmployee(id, salonID uint, name string, active bool) *models.Employee {
	e := &models.Employee{ID: id, SalonID: salonID, Name: name, Active: active}
	r.employees[id] = e
	return e
}

func (r *fakeRepo) seedCapability(employeeID, serviceID uint, available bool) {
	r.caps[[2]uint{employeeID, serviceID}] = available
}

func (r *fakeRepo) seedHours(employeeID uint, weekday int, start, end string) {
	r.hours[[2]uint{employeeID, uint(weekday)}] = &models.WorkingHours{
		EmployeeID: employeeID,
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
		Active:     true,
	}
}

func (r *fakeRepo) seedHoursWithBreak(employeeID uint, weekday int, start, end, breakStart, breakEnd string) {
	wh := r.hours[[2]uint{employeeID, uint(weekday)}]
	if wh == nil {
		r.seedHours(employeeID, weekday, start, end)
		wh = r.hours[[2]uint{employeeID, uint(weekday)}]
	}
	wh.StartTime = start
	wh.EndTime = end
	wh.BreakStart = breakStart
	wh.BreakEnd = breakEnd
}

func (r *fakeRepo) seedLeave(employeeID uint, weekday int) {
	r.leave[[2]uint{employeeID, uint(weekday)}] = true
}

func (r *fakeRepo) seedAppointment(salonID uint, employeeID *uint, serviceID uint, start, end time.Time, status string) *models.Appointment {
	r.nextID++
	ap := &models.Appointment{
		ID:         r.nextID,
		SalonID:    salonID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	}
	r.appointments[ap.ID] = ap
	return ap
}

// -------- schedule.Repository --------

func (r *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	if s, ok := r.salons[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	if s, ok := r.services[serviceID]; ok && s.SalonID == salonID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetCustomer(ctx context.Context, salonID, customerID uint) (*models.Customer, error) {
	if c, ok := r.customers[customerID]; ok && c.SalonID == salonID {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetOrCreateCustomer(ctx context.Context, salonID uint, name, phone, email string) (*models.Customer, error) {
	// find-or-insert is atomic, like the unique-index upsert it stands in for
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.SalonID == salonID && c.Phone == phone {
			return c, nil
		}
	}
	r.nextID++
	c := &models.Customer{ID: r.nextID, SalonID: salonID, Name: name, Phone: phone, Email: email}
	r.customers[c.ID] = c
	return c, nil
}

func (r *fakeRepo) GetEmployee(ctx context.Context, salonID, employeeID uint) (*models.Employee, error) {
	if e, ok := r.employees[employeeID]; ok && e.SalonID == salonID {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListCapableEmployees(ctx context.Context, salonID, serviceID uint) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range r.employees {
		if e.SalonID != salonID || !e.Active {
			continue
		}
		if r.caps[[2]uint{e.ID, serviceID}] {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) HasCapability(ctx context.Context, employeeID, serviceID uint) (bool, error) {
	return r.caps[[2]uint{employeeID, serviceID}], nil
}

func (r *fakeRepo) GetWorkingHours(ctx context.Context, employeeID uint, weekday time.Weekday) (*models.WorkingHours, error) {
	return r.hours[[2]uint{employeeID, uint(weekday)}], nil
}

func (r *fakeRepo) IsOnLeave(ctx context.Context, employeeID uint, weekday time.Weekday) (bool, error) {
	return r.leave[[2]uint{employeeID, uint(weekday)}], nil
}

func (r *fakeRepo) ListConflicting(ctx context.Context, salonID uint, employeeID *uint, start, end time.Time, excludeID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID != salonID || ap.ID == excludeID {
			continue
		}
		if !schedule.CountsForConflicts(schedule.Status(ap.Status)) {
			continue
		}
		if employeeID == nil {
			if ap.EmployeeID != nil {
				continue
			}
		} else {
			if ap.EmployeeID == nil || *ap.EmployeeID != *employeeID {
				continue
			}
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, salonID, appointmentID uint) (*models.Appointment, error) {
	if ap, ok := r.appointments[appointmentID]; ok && ap.SalonID == salonID {
		return ap, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = ap
	return nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.appointments[ap.ID] = ap
	return nil
}

func (r *fakeRepo) DeleteAppointment(ctx context.Context, salonID, appointmentID uint) error {
	if ap, ok := r.appointments[appointmentID]; ok && ap.SalonID == salonID {
		delete(r.appointments, appointmentID)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListAppointmentsForDay(ctx context.Context, salonID, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	id := employeeID
	return r.listPeriod(salonID, &id, start, end), nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, salonID uint, employeeID *uint, start, end time.Time) ([]models.Appointment, error) {
	return r.listPeriodAll(salonID, employeeID, start, end), nil
}

func (r *fakeRepo) listPeriod(salonID uint, employeeID *uint, start, end time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID != salonID {
			continue
		}
		if !schedule.CountsForConflicts(schedule.Status(ap.Status)) {
			continue
		}
		if employeeID != nil && (ap.EmployeeID == nil || *ap.EmployeeID != *employeeID) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, r.withRelations(*ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *fakeRepo) listPeriodAll(salonID uint, employeeID *uint, start, end time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID != salonID {
			continue
		}
		if employeeID != nil && (ap.EmployeeID == nil || *ap.EmployeeID != *employeeID) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, r.withRelations(*ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *fakeRepo) withRelations(ap models.Appointment) models.Appointment {
	if s, ok := r.services[ap.ServiceID]; ok {
		ap.Service = *s
	}
	if c, ok := r.customers[ap.CustomerID]; ok {
		ap.Customer = *c
	}
	if ap.EmployeeID != nil {
		if e, ok := r.employees[*ap.EmployeeID]; ok {
			ap.Employee = e
		}
	}
	return ap
}

func (r *fakeRepo) InTx(ctx context.Context, fn func(schedule.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}
