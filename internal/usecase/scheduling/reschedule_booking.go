package scheduling

import (
	"context"
	"time"

	"github.com/saloncore/salon-scheduler/internal/audit"
	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/infra/lock"
	"github.com/saloncore/salon-scheduler/internal/models"
)

type RescheduleBooking struct {
	repo   schedule.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewRescheduleBooking(
	repo schedule.Repository,
	locker lock.Locker,
	auditor *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:   repo,
		locker: locker,
		audit:  auditor,
	}
}

type RescheduleInput struct {
	SalonID       uint
	AppointmentID uint

	NewStart time.Time
	// Zero value derives NewEnd from the appointment's service duration.
	NewEnd time.Time

	ActorID *uint
}

// Execute re-runs the booking pipeline for an existing appointment with
// itself excluded from conflict scope. The stored interval is replaced
// only on success.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, schedule.NotFound("appointment_not_found")
	}

	if err := schedule.CanReschedule(schedule.Status(ap.Status)); err != nil {
		return nil, err
	}

	if in.NewStart.IsZero() {
		return nil, schedule.Validation("invalid_interval")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, ap.ServiceID)
	if err != nil {
		return nil, schedule.NotFound("service_not_found")
	}

	newEnd := in.NewEnd
	if newEnd.IsZero() {
		newEnd = in.NewStart.Add(time.Duration(service.DurationMin) * time.Minute)
	}
	if !in.NewStart.Before(newEnd) {
		return nil, schedule.Validation("invalid_interval")
	}

	if ap.EmployeeID != nil {
		employee, err := uc.repo.GetEmployee(ctx, in.SalonID, *ap.EmployeeID)
		if err != nil {
			return nil, schedule.NotFound("employee_not_found")
		}
		if err := checkEmployeeEligibility(ctx, uc.repo, employee, ap.ServiceID, in.NewStart, newEnd); err != nil {
			return nil, err
		}
	}

	oldStart, oldEnd := ap.StartTime, ap.EndTime

	err = reserveInterval(
		ctx, uc.repo, uc.locker,
		in.SalonID, ap.EmployeeID, in.NewStart, newEnd, ap.ID,
		func(tx schedule.Repository) error {
			ap.StartTime = in.NewStart
			ap.EndTime = newEnd
			return tx.UpdateAppointment(ctx, ap)
		},
	)
	if err != nil {
		ap.StartTime, ap.EndTime = oldStart, oldEnd
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": oldStart,
			"to":   in.NewStart,
		},
	})

	return ap, nil
}
