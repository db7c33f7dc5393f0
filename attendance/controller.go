package attendance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

// Controller is the entry/exit state machine. It trusts that the caller has
// already verified the subject's identity; it performs no biometric work.
type Controller struct {
	repo *Repository
}

func NewController(repo *Repository) *Controller {
	return &Controller{repo: repo}
}

// MarkStudentEntry opens a presence session for the student. Fails with
// DUPLICATE_OPEN_SESSION if a session is already open for (reg_no, today);
// the partial unique index guarantees that under concurrent calls exactly
// one entry succeeds.
func (c *Controller) MarkStudentEntry(regNo string, now time.Time) Result {
	regNo = strings.TrimSpace(regNo)
	if regNo == "" {
		return failure(CodeValidation, "Registration number is required.")
	}

	if _, err := c.repo.FindStudentByRegNo(regNo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(CodeUnknownIdentity, fmt.Sprintf("No student registered with number %s.", regNo))
		}
		return failure(CodeStoreUnavailable, "Could not reach the attendance store.")
	}

	session := models.StudentSession{
		RegNo:  regNo,
		Date:   now.Format(DateLayout),
		TimeIn: now,
	}
	if err := c.repo.CreateStudentSession(&session); err != nil {
		if isDuplicateKey(err) {
			return failure(CodeDuplicateOpenSession, "You have already marked ENTRY and haven't EXITED yet for today.")
		}
		return failure(CodeStoreUnavailable, "Could not reach the attendance store.")
	}
	return success(fmt.Sprintf("Entry marked at %s.", now.Format("15:04:05")))
}

// MarkStudentExit closes the most recent open session for the student. Fails
// with NO_OPEN_SESSION when there is nothing to close.
func (c *Controller) MarkStudentExit(regNo string, now time.Time) Result {
	regNo = strings.TrimSpace(regNo)
	if regNo == "" {
		return failure(CodeValidation, "Registration number is required.")
	}

	closed, err := c.repo.CloseLatestStudentSession(regNo, now.Format(DateLayout), now)
	if err != nil {
		return failure(CodeStoreUnavailable, "Could not reach the attendance store.")
	}
	if closed == 0 {
		return failure(CodeNoOpenSession, "No open entry found for today. You haven't entered (or already exited).")
	}
	return success(fmt.Sprintf("Exit marked at %s.", now.Format("15:04:05")))
}

// MarkStaffEntry records the staff member as Present for one class hour.
// Fails with DUPLICATE_HOUR_RECORD when the hour is already marked for today.
// Calls for different hours are independent; the caller aggregates outcomes.
func (c *Controller) MarkStaffEntry(staffID, hour string, now time.Time) Result {
	staffID = strings.TrimSpace(staffID)
	hour = strings.TrimSpace(hour)
	if staffID == "" {
		return failure(CodeValidation, "Staff ID is required.")
	}
	if hour == "" {
		return failure(CodeValidation, "Class hour is required.")
	}

	if _, err := c.repo.FindStaffByID(staffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(CodeUnknownIdentity, fmt.Sprintf("No staff registered with ID %s.", staffID))
		}
		return failure(CodeStoreUnavailable, "Could not reach the attendance store.")
	}

	record := models.StaffAttendanceRecord{
		StaffID: staffID,
		Date:    now.Format(DateLayout),
		Hour:    hour,
		TimeIn:  now,
		Status:  models.StatusPresent,
	}
	if err := c.repo.CreateStaffRecord(&record); err != nil {
		if isDuplicateKey(err) {
			return failure(CodeDuplicateHourRecord, fmt.Sprintf("Already marked entry for %s today.", hour))
		}
		return failure(CodeStoreUnavailable, "Could not reach the attendance store.")
	}
	return success(fmt.Sprintf("Entry for %s marked.", hour))
}

// MarkStaffExit closes the staff member's most recently opened record for
// today. It does not check which hour that record belongs to.
func (c *Controller) MarkStaffExit(staffID string, now time.Time) Result {
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return failure(CodeValidation, "Staff ID is required.")
	}

	closed, err := c.repo.CloseLatestStaffRecord(staffID, now.Format(DateLayout), now)
	if err != nil {
		return failure(CodeStoreUnavailable, "Could not reach the attendance store.")
	}
	if closed == 0 {
		return failure(CodeNoOpenSession, "No open entry found for today.")
	}
	return success("Exit marked successfully.")
}
