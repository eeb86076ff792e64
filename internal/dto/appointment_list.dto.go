package dto

import (
	"time"

	"github.com/saloncore/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Reference    string    `json:"reference"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	EmployeeName string    `json:"employee_name,omitempty"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:           ap.ID,
		Reference:    ap.Reference,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		Source:       ap.Source,
		CustomerName: ap.Customer.Name,
		ServiceName:  ap.Service.Name,
	}
	if ap.Employee != nil {
		out.EmployeeName = ap.Employee.Name
	}
	return out
}
