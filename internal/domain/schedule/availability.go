package schedule

import (
	"time"

	"github.com/saloncore/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	SalonID   uint
	ServiceID uint

	// When set, only this employee is checked instead of enumerating all
	// capable staff.
	EmployeeID *uint

	// Local date in the salon's timezone.
	Date time.Time
}

// EmployeeAvailability pairs an on-duty employee with that weekday's
// working window.
type EmployeeAvailability struct {
	Employee models.Employee `json:"employee"`
	Window   Window          `json:"window"`
}

type ConflictResult struct {
	Conflict       bool   `json:"conflict"`
	ConflictingIDs []uint `json:"conflicting_ids"`
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
