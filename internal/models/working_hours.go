package models

import "time"

// One row per employee and weekday (0 = Sunday .. 6 = Saturday).
// Times are local "HH:MM" strings interpreted in the salon's timezone.
type WorkingHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"uniqueIndex:idx_employee_weekday;not null" json:"employee_id"`

	Weekday int `gorm:"uniqueIndex:idx_employee_weekday" json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
