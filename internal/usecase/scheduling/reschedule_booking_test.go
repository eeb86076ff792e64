package scheduling

import (
	"context"
	"testing"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/infra/lock"
)

func TestReschedule_InPlaceOverlapAllowed(t *testing.T) {
	repo := newBookingFixture()
	ap := repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), "scheduled")
	uc := NewRescheduleBooking(repo, lock.Noop{}, testDispatcher())

	// shifts by 15 minutes, overlapping its own old interval
	got, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStart:      tue(10, 15),
	})
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !got.StartTime.Equal(tue(10, 15)) || !got.EndTime.Equal(tue(10, 45)) {
		t.Fatalf("expected 10:15-10:45, got %s-%s",
			got.StartTime.Format("15:04"), got.EndTime.Format("15:04"))
	}
}

func TestReschedule_ConflictKeepsOriginalInterval(t *testing.T) {
	repo := newBookingFixture()
	ap := repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), "scheduled")
	other := repo.seedAppointment(1, uintPtr(5), 10, tue(11, 0), tue(11, 30), "scheduled")
	uc := NewRescheduleBooking(repo, lock.Noop{}, testDispatcher())

	_, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStart:      tue(11, 15),
	})

	rej, ok := schedule.AsRejection(err)
	if !ok || rej.Kind != schedule.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(rej.ConflictingIDs) != 1 || rej.ConflictingIDs[0] != other.ID {
		t.Fatalf("expected conflicting ids [%d], got %v", other.ID, rej.ConflictingIDs)
	}

	if !ap.StartTime.Equal(tue(10, 0)) || !ap.EndTime.Equal(tue(10, 30)) {
		t.Fatalf("original interval must survive a failed reschedule, got %s-%s",
			ap.StartTime.Format("15:04"), ap.EndTime.Format("15:04"))
	}
}

func TestReschedule_TerminalStatesRejected(t *testing.T) {
	for _, status := range []string{"cancelled", "completed", "no_show"} {
		repo := newBookingFixture()
		ap := repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), status)
		uc := NewRescheduleBooking(repo, lock.Noop{}, testDispatcher())

		_, err := uc.Execute(context.Background(), RescheduleInput{
			SalonID:       1,
			AppointmentID: ap.ID,
			NewStart:      tue(14, 0),
		})
		if !schedule.IsKind(err, schedule.KindValidation) {
			t.Fatalf("rescheduling a %s appointment should fail validation, got %v", status, err)
		}
	}
}

func TestReschedule_ReChecksEligibility(t *testing.T) {
	repo := newBookingFixture()
	ap := repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), "scheduled")
	uc := NewRescheduleBooking(repo, lock.Noop{}, testDispatcher())

	_, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStart:      tue(20, 0),
	})
	if !schedule.IsKind(err, schedule.KindIneligibleEmployee) {
		t.Fatalf("expected ineligible rejection outside working hours, got %v", err)
	}
}
