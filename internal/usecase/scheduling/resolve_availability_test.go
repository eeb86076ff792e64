package scheduling

import (
	"context"
	"testing"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

func newAvailabilityFixture() *fakeRepo {
	repo := newFakeRepo()
	repo.seedSalon(1, "UTC")
	repo.seedService(10, 1, "Haircut", 30, 50)

	repo.seedEmployee(5, 1, "Alex", true)
	repo.seedCapability(5, 10, true)
	repo.seedHours(5, 2, "09:00", "18:00")

	repo.seedEmployee(6, 1, "Blair", true)
	repo.seedCapability(6, 10, true)
	repo.seedHours(6, 2, "10:00", "16:00")

	return repo
}

func TestResolveAvailability_OrderedByName(t *testing.T) {
	repo := newAvailabilityFixture()
	uc := NewResolveAvailability(repo)

	got, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		SalonID:   1,
		ServiceID: 10,
		Date:      tue(0, 0),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 available employees, got %d", len(got))
	}
	if got[0].Employee.Name != "Alex" || got[1].Employee.Name != "Blair" {
		t.Fatalf("expected [Alex Blair], got [%s %s]", got[0].Employee.Name, got[1].Employee.Name)
	}
	if got[0].Window.Start != "09:00" || got[0].Window.End != "18:00" {
		t.Fatalf("expected Alex window 09:00-18:00, got %s-%s", got[0].Window.Start, got[0].Window.End)
	}
}

func TestResolveAvailability_LeaveOverridesWindow(t *testing.T) {
	repo := newAvailabilityFixture()
	repo.seedLeave(5, 2)
	uc := NewResolveAvailability(repo)

	got, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		SalonID:   1,
		ServiceID: 10,
		Date:      tue(0, 0),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if len(got) != 1 || got[0].Employee.ID != 6 {
		t.Fatalf("expected only Blair, got %v", got)
	}
}

func TestResolveAvailability_SkipsWithoutWindow(t *testing.T) {
	repo := newAvailabilityFixture()
	// Blair has no Wednesday row; Alex has an inactive one
	repo.seedHours(5, 3, "09:00", "18:00")
	repo.hours[[2]uint{5, 3}].Active = false
	uc := NewResolveAvailability(repo)

	wed := tue(0, 0).AddDate(0, 0, 1)

	got, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		SalonID:   1,
		ServiceID: 10,
		Date:      wed,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no availability on Wednesday, got %d", len(got))
	}
}

func TestResolveAvailability_EmployeeFilter(t *testing.T) {
	repo := newAvailabilityFixture()
	uc := NewResolveAvailability(repo)

	got, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		SalonID:    1,
		ServiceID:  10,
		EmployeeID: uintPtr(6),
		Date:       tue(0, 0),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 1 || got[0].Employee.ID != 6 {
		t.Fatalf("expected only employee 6, got %v", got)
	}
}

func TestResolveAvailability_InactiveAndIncapableExcluded(t *testing.T) {
	repo := newAvailabilityFixture()
	repo.employees[5].Active = false
	repo.seedCapability(6, 10, false)
	uc := NewResolveAvailability(repo)

	got, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		SalonID:   1,
		ServiceID: 10,
		Date:      tue(0, 0),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestResolveAvailability_UnknownService(t *testing.T) {
	repo := newAvailabilityFixture()
	uc := NewResolveAvailability(repo)

	_, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		SalonID:   1,
		ServiceID: 99,
		Date:      tue(0, 0),
	})
	if !schedule.IsKind(err, schedule.KindNotFound) {
		t.Fatalf("expected not-found rejection, got %v", err)
	}
}
