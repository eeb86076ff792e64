package scheduling

import (
	"context"
	"time"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

type CheckConflict struct {
	repo schedule.Repository
}

func NewCheckConflict(repo schedule.Repository) *CheckConflict {
	return &CheckConflict{repo: repo}
}

type ConflictInput struct {
	SalonID uint

	// Nil scopes the check to salon-wide unassigned appointments only;
	// an unassigned booking does not block any specific employee's
	// calendar and vice versa.
	EmployeeID *uint

	Start time.Time
	End   time.Time

	// Reschedule-in-place: the appointment being moved must not conflict
	// with itself.
	ExcludeAppointmentID uint
}

func (uc *CheckConflict) Execute(
	ctx context.Context,
	in ConflictInput,
) (schedule.ConflictResult, error) {

	if in.Start.IsZero() || !in.Start.Before(in.End) {
		return schedule.ConflictResult{}, schedule.Validation("invalid_interval")
	}

	conflicts, err := uc.repo.ListConflicting(
		ctx,
		in.SalonID,
		in.EmployeeID,
		in.Start,
		in.End,
		in.ExcludeAppointmentID,
	)
	if err != nil {
		return schedule.ConflictResult{}, err
	}

	result := schedule.ConflictResult{
		ConflictingIDs: make([]uint, 0, len(conflicts)),
	}
	for _, ap := range conflicts {
		result.ConflictingIDs = append(result.ConflictingIDs, ap.ID)
	}
	result.Conflict = len(result.ConflictingIDs) > 0

	return result, nil
}
