package schedule

import (
	"errors"
	"fmt"
)

// ===============================
// Booking Rejections
// ===============================

type RejectionKind string

const (
	// Malformed interval, inactive service, cross-tenant reference.
	// Deterministic, rejected before any read of competing appointments.
	KindValidation RejectionKind = "validation"

	// Referenced salon/customer/service/employee/appointment does not
	// exist in this salon.
	KindNotFound RejectionKind = "not_found"

	// Capability, weekday or working-window mismatch for the requested
	// employee.
	KindIneligibleEmployee RejectionKind = "ineligible_employee"

	// Overlap with an existing active appointment. Carries the
	// conflicting appointment ids.
	KindConflict RejectionKind = "conflict"

	// Timeout or contention on the store. The only kind the coordinator
	// retries.
	KindTransientStore RejectionKind = "transient_store"
)

type Rejection struct {
	Kind RejectionKind
	Code string

	// Set only for KindConflict.
	ConflictingIDs []uint
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Code)
}

func (r *Rejection) Retryable() bool {
	return r.Kind == KindTransientStore
}

func Validation(code string) *Rejection {
	return &Rejection{Kind: KindValidation, Code: code}
}

func NotFound(code string) *Rejection {
	return &Rejection{Kind: KindNotFound, Code: code}
}

func Ineligible(code string) *Rejection {
	return &Rejection{Kind: KindIneligibleEmployee, Code: code}
}

func Conflict(ids []uint) *Rejection {
	return &Rejection{Kind: KindConflict, Code: "time_conflict", ConflictingIDs: ids}
}

func Transient(code string) *Rejection {
	return &Rejection{Kind: KindTransientStore, Code: code}
}

func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

func IsKind(err error, kind RejectionKind) bool {
	if r, ok := AsRejection(err); ok {
		return r.Kind == kind
	}
	return false
}
