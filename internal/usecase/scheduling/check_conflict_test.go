package scheduling

import (
	"context"
	"testing"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

func TestCheckConflict_BackToBackIsFree(t *testing.T) {
	repo := newBookingFixture()
	repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), "scheduled")
	uc := NewCheckConflict(repo)

	got, err := uc.Execute(context.Background(), ConflictInput{
		SalonID:    1,
		EmployeeID: uintPtr(5),
		Start:      tue(10, 30),
		End:        tue(11, 0),
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got.Conflict {
		t.Fatalf("back-to-back interval must not conflict, got ids %v", got.ConflictingIDs)
	}
}

func TestCheckConflict_OverlapReported(t *testing.T) {
	repo := newBookingFixture()
	existing := repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), "scheduled")
	uc := NewCheckConflict(repo)

	got, err := uc.Execute(context.Background(), ConflictInput{
		SalonID:    1,
		EmployeeID: uintPtr(5),
		Start:      tue(10, 15),
		End:        tue(10, 45),
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !got.Conflict || len(got.ConflictingIDs) != 1 || got.ConflictingIDs[0] != existing.ID {
		t.Fatalf("expected conflict with [%d], got %+v", existing.ID, got)
	}
}

func TestCheckConflict_ExcludeSelf(t *testing.T) {
	repo := newBookingFixture()
	existing := repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), "scheduled")
	uc := NewCheckConflict(repo)

	got, err := uc.Execute(context.Background(), ConflictInput{
		SalonID:              1,
		EmployeeID:           uintPtr(5),
		Start:                tue(10, 15),
		End:                  tue(10, 45),
		ExcludeAppointmentID: existing.ID,
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got.Conflict {
		t.Fatalf("excluded appointment must not conflict with itself")
	}
}

func TestCheckConflict_UnassignedScope(t *testing.T) {
	repo := newBookingFixture()
	repo.seedAppointment(1, uintPtr(5), 10, tue(10, 0), tue(10, 30), "scheduled")
	unassigned := repo.seedAppointment(1, nil, 10, tue(10, 0), tue(10, 30), "scheduled")
	uc := NewCheckConflict(repo)

	got, err := uc.Execute(context.Background(), ConflictInput{
		SalonID: 1,
		Start:   tue(10, 0),
		End:     tue(10, 30),
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !got.Conflict || len(got.ConflictingIDs) != 1 || got.ConflictingIDs[0] != unassigned.ID {
		t.Fatalf("nil employee scope must see only unassigned rows, got %+v", got)
	}
}

func TestCheckConflict_InvalidInterval(t *testing.T) {
	repo := newBookingFixture()
	uc := NewCheckConflict(repo)

	_, err := uc.Execute(context.Background(), ConflictInput{
		SalonID:    1,
		EmployeeID: uintPtr(5),
		Start:      tue(11, 0),
		End:        tue(11, 0),
	})
	if !schedule.IsKind(err, schedule.KindValidation) {
		t.Fatalf("expected validation rejection for empty interval, got %v", err)
	}
}
