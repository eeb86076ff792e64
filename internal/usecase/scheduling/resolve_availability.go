package scheduling

import (
	"context"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

// ResolveAvailability answers "who can perform this service on this date,
// and during which window". Duration-fit against the window is not checked
// here; that belongs to the conflict/booking pipeline.
type ResolveAvailability struct {
	repo schedule.Repository
}

func NewResolveAvailability(repo schedule.Repository) *ResolveAvailability {
	return &ResolveAvailability{repo: repo}
}

func (uc *ResolveAvailability) Execute(
	ctx context.Context,
	in schedule.AvailabilityInput,
) ([]schedule.EmployeeAvailability, error) {

	if _, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID); err != nil {
		return nil, schedule.NotFound("service_not_found")
	}

	// Capability rows project to active same-salon employees, ordered by
	// name. An empty set is a terminal outcome, not a fault.
	candidates, err := uc.repo.ListCapableEmployees(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	weekday := schedule.WeekdayOf(in.Date)

	out := make([]schedule.EmployeeAvailability, 0, len(candidates))
	for _, employee := range candidates {

		if in.EmployeeID != nil && employee.ID != *in.EmployeeID {
			continue
		}

		// Leave always wins over a configured working window.
		onLeave, err := uc.repo.IsOnLeave(ctx, employee.ID, weekday)
		if err != nil {
			return nil, err
		}
		if onLeave {
			continue
		}

		wh, err := uc.repo.GetWorkingHours(ctx, employee.ID, weekday)
		if err != nil {
			return nil, err
		}
		if wh == nil || !wh.Active {
			continue
		}

		out = append(out, schedule.EmployeeAvailability{
			Employee: employee,
			Window: schedule.Window{
				Start: schedule.TimeOfDay(wh.StartTime),
				End:   schedule.TimeOfDay(wh.EndTime),
			},
		})
	}

	return out, nil
}
