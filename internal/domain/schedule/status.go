package schedule

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Cancelled appointments leave conflict scope immediately and never
// re-enter it.
func CountsForConflicts(s Status) bool {
	return s != StatusCancelled
}

func InitialStatus() Status {
	return StatusScheduled
}

// ValidInitial reports whether a caller-supplied initial status is
// acceptable at booking time.
func ValidInitial(s Status) bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ===============================
// Transitions
// ===============================

func isActive(s Status) bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return Validation("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !isActive(current) {
		return Validation("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !isActive(current) {
		return Validation("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !isActive(current) {
		return Validation("invalid_state")
	}
	return nil
}

// CanReschedule guards the reschedule pipeline: only appointments still in
// conflict scope and not yet attended can move.
func CanReschedule(current Status) error {
	if !isActive(current) {
		return Validation("invalid_state")
	}
	return nil
}
