package scheduling

import (
	"context"

	"github.com/saloncore/salon-scheduler/internal/audit"
	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/models"
	"github.com/saloncore/salon-scheduler/internal/timezone"
)

type CancelBooking struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: auditor,
	}
}

// Execute sets status=cancelled. The appointment leaves conflict scope
// the moment the update commits.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	salonID uint,
	actorID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, schedule.NotFound("salon_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, salonID, appointmentID)
	if err != nil {
		return nil, schedule.NotFound("appointment_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	if err := schedule.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
