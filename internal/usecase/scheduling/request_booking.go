package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saloncore/salon-scheduler/internal/audit"
	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/httperr"
	"github.com/saloncore/salon-scheduler/internal/infra/lock"
	"github.com/saloncore/salon-scheduler/internal/models"
	"github.com/saloncore/salon-scheduler/internal/timezone"
)

const (
	// Lease held around the check-then-write section.
	bookingLeaseTTL = 5 * time.Second

	// Transient store failures are retried by the coordinator itself;
	// nothing else is.
	maxStoreRetries = 2
	retryBackoff    = 50 * time.Millisecond
)

// ======================================================
// INPUT
// ======================================================

type BookingInput struct {
	SalonID    uint
	CustomerID uint
	ServiceID  uint

	// Nil books an unassigned slot; assignment may happen later.
	EmployeeID *uint

	Start time.Time
	// Zero value derives End = Start + service duration.
	End time.Time

	// "" defaults to scheduled; confirmed is the only other accepted
	// initial status.
	Status string
	Source string
	Notes  string

	// Staff user behind the request, for the audit trail. Nil on public
	// bookings.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

// RequestBooking is the only write path for new appointments: it
// orchestrates eligibility, conflict detection and the persisted write as
// one serialized attempt. Requested -> {Confirmed | Rejected}.
type RequestBooking struct {
	repo   schedule.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewRequestBooking(
	repo schedule.Repository,
	locker lock.Locker,
	auditor *audit.Dispatcher,
) *RequestBooking {
	return &RequestBooking{
		repo:   repo,
		locker: locker,
		audit:  auditor,
	}
}

func (uc *RequestBooking) Execute(
	ctx context.Context,
	in BookingInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, schedule.NotFound("salon_not_found")
	}

	status := schedule.Status(in.Status)
	if in.Status == "" {
		status = schedule.InitialStatus()
	}
	if !schedule.ValidInitial(status) {
		return nil, schedule.Validation("invalid_initial_status")
	}

	if in.Start.IsZero() {
		return nil, schedule.Validation("invalid_interval")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, schedule.NotFound("service_not_found")
	}
	if !service.Active {
		return nil, schedule.Validation("service_inactive")
	}
	if service.DurationMin <= 0 {
		return nil, schedule.Validation("invalid_service_duration")
	}

	end := in.End
	if end.IsZero() {
		end = in.Start.Add(time.Duration(service.DurationMin) * time.Minute)
	}
	if !in.Start.Before(end) {
		return nil, schedule.Validation("invalid_interval")
	}

	customer, err := uc.repo.GetCustomer(ctx, in.SalonID, in.CustomerID)
	if err != nil {
		return nil, schedule.NotFound("customer_not_found")
	}

	if salon.MinAdvanceMinutes > 0 {
		now := timezone.NowIn(salon.Timezone)
		if in.Start.Before(now.Add(time.Duration(salon.MinAdvanceMinutes) * time.Minute)) {
			return nil, schedule.Validation("too_soon")
		}
	}

	if in.EmployeeID != nil {
		employee, err := uc.repo.GetEmployee(ctx, in.SalonID, *in.EmployeeID)
		if err != nil {
			return nil, schedule.NotFound("employee_not_found")
		}
		if err := checkEmployeeEligibility(ctx, uc.repo, employee, service.ID, in.Start, end); err != nil {
			return nil, err
		}
	}

	source := in.Source
	if source == "" {
		source = "staff"
	}

	ap := &models.Appointment{
		Reference:  uuid.NewString(),
		SalonID:    in.SalonID,
		CustomerID: customer.ID,
		ServiceID:  service.ID,
		EmployeeID: in.EmployeeID,
		StartTime:  in.Start,
		EndTime:    end,
		Status:     string(status),
		Source:     source,
		Notes:      in.Notes,
	}

	err = reserveInterval(
		ctx, uc.repo, uc.locker,
		in.SalonID, in.EmployeeID, in.Start, end, 0,
		func(tx schedule.Repository) error {
			return tx.CreateAppointment(ctx, ap)
		},
	)
	if err != nil {
		if schedule.IsKind(err, schedule.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				SalonID: in.SalonID,
				UserID:  in.ActorID,
				Action:  "appointment_conflict",
				Entity:  "appointment",
				Metadata: map[string]any{
					"start": in.Start,
					"end":   end,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// ======================================================
// SHARED PIPELINE PIECES
// ======================================================

// checkEmployeeEligibility enforces "can this employee ever take this
// booking at this time": capability, leave, weekday window. Leave is a
// hard override of any configured window.
func checkEmployeeEligibility(
	ctx context.Context,
	repo schedule.Repository,
	employee *models.Employee,
	serviceID uint,
	start time.Time,
	end time.Time,
) error {

	if !employee.Active {
		return schedule.Ineligible("employee_inactive")
	}

	capable, err := repo.HasCapability(ctx, employee.ID, serviceID)
	if err != nil {
		return err
	}
	if !capable {
		return schedule.Ineligible("not_capable")
	}

	weekday := schedule.WeekdayOf(start)

	onLeave, err := repo.IsOnLeave(ctx, employee.ID, weekday)
	if err != nil {
		return err
	}
	if onLeave {
		return schedule.Ineligible("on_leave")
	}

	wh, err := repo.GetWorkingHours(ctx, employee.ID, weekday)
	if err != nil {
		return err
	}
	if wh == nil || !wh.Active {
		return schedule.Ineligible("not_working_that_day")
	}

	window := schedule.Window{
		Start: schedule.TimeOfDay(wh.StartTime),
		End:   schedule.TimeOfDay(wh.EndTime),
	}
	if !window.Contains(start, end) {
		return schedule.Ineligible("outside_working_hours")
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		breakStart := schedule.TimeOfDay(wh.BreakStart).At(start)
		breakEnd := schedule.TimeOfDay(wh.BreakEnd).At(start)
		if schedule.Overlaps(start, end, breakStart, breakEnd) {
			return schedule.Ineligible("during_break")
		}
	}

	return nil
}

func leaseKey(salonID uint, employeeID *uint) string {
	if employeeID == nil {
		return fmt.Sprintf("booking:salon:%d:unassigned", salonID)
	}
	return fmt.Sprintf("booking:salon:%d:employee:%d", salonID, *employeeID)
}

// reserveInterval serializes check-then-write per (salon, employee): an
// advisory lease around a transaction whose conflict scan locks the
// competing rows, with the Postgres exclusion constraint as the
// commit-time backstop. persist runs inside the transaction, so a failed
// attempt leaves no appointment behind.
func reserveInterval(
	ctx context.Context,
	repo schedule.Repository,
	locker lock.Locker,
	salonID uint,
	employeeID *uint,
	start time.Time,
	end time.Time,
	excludeID uint,
	persist func(schedule.Repository) error,
) error {

	var err error
	for attempt := 0; ; attempt++ {
		err = tryReserve(ctx, repo, locker, salonID, employeeID, start, end, excludeID, persist)

		rej, ok := schedule.AsRejection(err)
		if !ok || !rej.Retryable() || attempt >= maxStoreRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return schedule.Transient("store_timeout")
		case <-time.After(retryBackoff):
		}
	}
}

func tryReserve(
	ctx context.Context,
	repo schedule.Repository,
	locker lock.Locker,
	salonID uint,
	employeeID *uint,
	start time.Time,
	end time.Time,
	excludeID uint,
	persist func(schedule.Repository) error,
) error {

	release, err := locker.Acquire(ctx, leaseKey(salonID, employeeID), bookingLeaseTTL)
	if err != nil {
		return schedule.Transient("lease_unavailable")
	}
	defer release()

	err = repo.InTx(ctx, func(tx schedule.Repository) error {
		conflicts, err := tx.ListConflicting(ctx, salonID, employeeID, start, end, excludeID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			ids := make([]uint, 0, len(conflicts))
			for _, c := range conflicts {
				ids = append(ids, c.ID)
			}
			return schedule.Conflict(ids)
		}
		return persist(tx)
	})

	switch {
	case err == nil:
		return nil
	case schedule.IsKind(err, schedule.KindConflict):
		return err
	case httperr.IsExclusionConflict(err):
		// Lost the commit race to a concurrent writer. The transaction is
		// rolled back, so re-query the winner's row to name it.
		winners, lerr := repo.ListConflicting(ctx, salonID, employeeID, start, end, excludeID)
		if lerr != nil {
			return schedule.Conflict(nil)
		}
		ids := make([]uint, 0, len(winners))
		for _, c := range winners {
			ids = append(ids, c.ID)
		}
		return schedule.Conflict(ids)
	case errors.Is(err, context.DeadlineExceeded):
		return schedule.Transient("store_timeout")
	default:
		return err
	}
}
