package models

import "time"

// Recurring weekly day off. An employee with a row for a weekday is
// categorically unavailable on that weekday, even when an active working
// window exists for it.
type LeaveDay struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"uniqueIndex:idx_employee_leave_weekday;not null" json:"employee_id"`

	Weekday int `gorm:"uniqueIndex:idx_employee_leave_weekday" json:"weekday"`

	CreatedAt time.Time `json:"created_at"`
}
