package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/saloncore/salon-scheduler/internal/domain/schedule"
)

func runWriteRejection(t *testing.T, err error) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	handled := WriteRejection(c, err)
	return w, handled
}

func TestWriteRejection_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", schedule.Validation("invalid_interval"), http.StatusBadRequest},
		{"not_found", schedule.NotFound("service_not_found"), http.StatusNotFound},
		{"ineligible", schedule.Ineligible("on_leave"), http.StatusUnprocessableEntity},
		{"conflict", schedule.Conflict([]uint{3}), http.StatusConflict},
		{"transient", schedule.Transient("store_timeout"), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, handled := runWriteRejection(t, tc.err)
			if !handled {
				t.Fatal("expected the rejection to be handled")
			}
			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestWriteRejection_ConflictBody(t *testing.T) {
	w, _ := runWriteRejection(t, schedule.Conflict([]uint{7, 9}))

	var body struct {
		ErrorCode      string `json:"error_code"`
		ConflictingIDs []uint `json:"conflicting_ids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ErrorCode != "time_conflict" {
		t.Fatalf("expected error_code time_conflict, got %q", body.ErrorCode)
	}
	if len(body.ConflictingIDs) != 2 || body.ConflictingIDs[0] != 7 {
		t.Fatalf("expected conflicting_ids [7 9], got %v", body.ConflictingIDs)
	}
}

func TestWriteRejection_PassesThroughOtherErrors(t *testing.T) {
	w, handled := runWriteRejection(t, errors.New("boom"))
	if handled {
		t.Fatal("plain errors must not be handled as rejections")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected untouched recorder, got %d", w.Code)
	}
}
