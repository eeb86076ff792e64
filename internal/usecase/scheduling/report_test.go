package scheduling

import (
	"context"
	"testing"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

func TestAppointmentReport_CountsAndRevenue(t *testing.T) {
	repo := newBookingFixture()
	repo.seedService(11, 1, "Color", 90, 120)

	repo.seedAppointment(1, uintPtr(5), 10, tue(9, 0), tue(9, 30), "completed")
	repo.seedAppointment(1, uintPtr(5), 11, tue(10, 0), tue(11, 30), "completed")
	repo.seedAppointment(1, uintPtr(5), 10, tue(12, 0), tue(12, 30), "cancelled")
	repo.seedAppointment(1, uintPtr(5), 10, tue(14, 0), tue(14, 30), "scheduled")

	uc := NewAppointmentReport(repo)

	got, err := uc.Execute(context.Background(), 1, nil, tue(0, 0), tue(23, 59))
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if got.Total != 4 {
		t.Fatalf("expected 4 appointments, got %d", got.Total)
	}
	if got.CountsByStatus["completed"] != 2 || got.CountsByStatus["cancelled"] != 1 || got.CountsByStatus["scheduled"] != 1 {
		t.Fatalf("unexpected status counts: %v", got.CountsByStatus)
	}
	// only completed appointments earn revenue
	if got.Revenue != 170 {
		t.Fatalf("expected revenue 170, got %v", got.Revenue)
	}
	if len(got.Appointments) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got.Appointments))
	}
	if got.Appointments[0].ServiceName != "Haircut" {
		t.Fatalf("expected first row Haircut, got %q", got.Appointments[0].ServiceName)
	}
}

func TestAppointmentReport_EmployeeScope(t *testing.T) {
	repo := newBookingFixture()
	repo.seedEmployee(6, 1, "Blair", true)
	repo.seedAppointment(1, uintPtr(5), 10, tue(9, 0), tue(9, 30), "scheduled")
	repo.seedAppointment(1, uintPtr(6), 10, tue(9, 0), tue(9, 30), "scheduled")

	uc := NewAppointmentReport(repo)

	got, err := uc.Execute(context.Background(), 1, uintPtr(6), tue(0, 0), tue(23, 59))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got.Total != 1 {
		t.Fatalf("expected 1 appointment for employee 6, got %d", got.Total)
	}
}

func TestAppointmentReport_InvalidRange(t *testing.T) {
	repo := newBookingFixture()
	uc := NewAppointmentReport(repo)

	_, err := uc.Execute(context.Background(), 1, nil, tue(10, 0), tue(10, 0))
	if !schedule.IsKind(err, schedule.KindValidation) {
		t.Fatalf("expected validation rejection, got %v", err)
	}
}
