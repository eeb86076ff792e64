package scheduling

import (
	"context"
	"time"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

type FreeSlots struct {
	repo schedule.Repository
}

func NewFreeSlots(repo schedule.Repository) *FreeSlots {
	return &FreeSlots{repo: repo}
}

type FreeSlotsInput struct {
	SalonID    uint
	EmployeeID uint
	ServiceID  uint
	Date       time.Time
}

// Execute enumerates bookable start times for one employee, service and
// date: the working window, stepped by service duration, minus the break
// window and already-booked intervals.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	in FreeSlotsInput,
) ([]schedule.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, schedule.NotFound("service_not_found")
	}

	employee, err := uc.repo.GetEmployee(ctx, in.SalonID, in.EmployeeID)
	if err != nil {
		return nil, schedule.NotFound("employee_not_found")
	}

	capable, err := uc.repo.HasCapability(ctx, employee.ID, service.ID)
	if err != nil {
		return nil, err
	}
	if !employee.Active || !capable {
		return []schedule.TimeSlot{}, nil
	}

	weekday := schedule.WeekdayOf(in.Date)

	onLeave, err := uc.repo.IsOnLeave(ctx, employee.ID, weekday)
	if err != nil {
		return nil, err
	}
	if onLeave {
		return []schedule.TimeSlot{}, nil
	}

	wh, err := uc.repo.GetWorkingHours(ctx, employee.ID, weekday)
	if err != nil {
		return nil, err
	}
	if wh == nil || !wh.Active {
		return []schedule.TimeSlot{}, nil
	}

	dayStart := schedule.TimeOfDay(wh.StartTime).At(in.Date)
	dayEnd := schedule.TimeOfDay(wh.EndTime).At(in.Date)

	hasBreak := wh.BreakStart != "" && wh.BreakEnd != ""
	var breakStart, breakEnd time.Time
	if hasBreak {
		breakStart = schedule.TimeOfDay(wh.BreakStart).At(in.Date)
		breakEnd = schedule.TimeOfDay(wh.BreakEnd).At(in.Date)
	}

	booked, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.SalonID,
		employee.ID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	slots := []schedule.TimeSlot{}

	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasBreak && schedule.Overlaps(slotStart, slotEnd, breakStart, breakEnd) {
			continue
		}

		// skip appointments that already ended before this slot
		for apIdx < len(booked) && !booked[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		if apIdx < len(booked) {
			ap := booked[apIdx]
			if schedule.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
			}
		}

		if !conflict {
			slots = append(slots, schedule.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
