package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

// WriteRejection maps a typed scheduling rejection onto the HTTP surface.
// Returns false when err is not a rejection, leaving the caller to treat
// it as an internal error.
func WriteRejection(c *gin.Context, err error) bool {
	rej, ok := schedule.AsRejection(err)
	if !ok {
		return false
	}

	switch rej.Kind {
	case schedule.KindValidation:
		BadRequest(c, rej.Code, "Invalid booking request.")
	case schedule.KindNotFound:
		NotFound(c, rej.Code, "Referenced record not found.")
	case schedule.KindIneligibleEmployee:
		Write(c, http.StatusUnprocessableEntity, rej.Code, "Employee cannot take this booking.")
	case schedule.KindConflict:
		c.JSON(http.StatusConflict, gin.H{
			"error_code":      rej.Code,
			"message":         "Time conflict with an existing appointment.",
			"conflicting_ids": rej.ConflictingIDs,
		})
	case schedule.KindTransientStore:
		Write(c, http.StatusServiceUnavailable, rej.Code, "Temporary scheduling failure, retry the request.")
	default:
		Internal(c, rej.Code, "Scheduling error.")
	}

	return true
}
