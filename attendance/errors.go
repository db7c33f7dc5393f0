package attendance

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Result codes. CONFLICT and NOT_FOUND codes are expected business outcomes
// and are returned to callers as values, never as errors.
const (
	CodeValidation           = "VALIDATION"
	CodeDuplicateOpenSession = "DUPLICATE_OPEN_SESSION"
	CodeDuplicateHourRecord  = "DUPLICATE_HOUR_RECORD"
	CodeNoOpenSession        = "NO_OPEN_SESSION"
	CodeNoStaffForCourse     = "NO_STAFF_FOR_COURSE"
	CodeUnknownIdentity      = "UNKNOWN_IDENTITY"
	CodeStoreUnavailable     = "STORE_UNAVAILABLE"
)

// Result is the outcome of a single controller operation. Message is always
// safe to show on a kiosk screen.
type Result struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func success(message string) Result {
	return Result{OK: true, Message: message}
}

func failure(code, message string) Result {
	return Result{OK: false, Code: code, Message: message}
}

// HTTPStatus maps a result code to the status the HTTP surface responds with.
func (r Result) HTTPStatus() int {
	if r.OK {
		return http.StatusOK
	}
	switch r.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeDuplicateOpenSession, CodeDuplicateHourRecord:
		return http.StatusConflict
	case CodeNoOpenSession, CodeNoStaffForCourse, CodeUnknownIdentity:
		return http.StatusNotFound
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// isDuplicateKey reports whether err is a Postgres unique violation
// (SQLSTATE 23505), without depending on the driver's error types.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}
