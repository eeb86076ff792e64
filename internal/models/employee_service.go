package models

import "time"

// Capability row: an employee may only be offered for a service when a row
// exists with IsAvailable = true.
type EmployeeService struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"uniqueIndex:idx_employee_service;not null" json:"employee_id"`
	ServiceID  uint `gorm:"uniqueIndex:idx_employee_service;not null" json:"service_id"`

	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
