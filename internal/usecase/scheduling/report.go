package scheduling

import (
	"context"
	"time"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
	"github.com/saloncore/salon-scheduler/internal/dto"
)

type AppointmentReport struct {
	repo schedule.Repository
}

func NewAppointmentReport(repo schedule.Repository) *AppointmentReport {
	return &AppointmentReport{repo: repo}
}

type ReportResult struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Total          int            `json:"total"`
	CountsByStatus map[string]int `json:"counts_by_status"`

	// Sum of service prices of completed appointments in range.
	Revenue float64 `json:"revenue"`

	Appointments []dto.AppointmentListDTO `json:"appointments"`
}

func (uc *AppointmentReport) Execute(
	ctx context.Context,
	salonID uint,
	employeeID *uint,
	from time.Time,
	to time.Time,
) (*ReportResult, error) {

	if !from.Before(to) {
		return nil, schedule.Validation("invalid_range")
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		salonID,
		employeeID,
		from,
		to,
	)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{
		From:           from,
		To:             to,
		Total:          len(appointments),
		CountsByStatus: map[string]int{},
		Appointments:   make([]dto.AppointmentListDTO, 0, len(appointments)),
	}

	for _, ap := range appointments {
		result.CountsByStatus[ap.Status]++
		if ap.Status == string(schedule.StatusCompleted) {
			result.Revenue += ap.Service.Price
		}
		result.Appointments = append(result.Appointments, dto.FromAppointment(ap))
	}

	return result, nil
}
