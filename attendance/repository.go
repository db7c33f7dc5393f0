package attendance

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

// DateLayout is the canonical format of the date column on session rows.
const DateLayout = "2006-01-02"

// Repository owns all database operations on identity and session rows.
// Every mutating method is a single transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository with the given GORM database connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- identities ---

func (r *Repository) CreateStudent(student *models.Student) error {
	return r.db.Create(student).Error
}

func (r *Repository) CreateStaff(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

// FindStudentByRegNo fetches a student by registration number.
func (r *Repository) FindStudentByRegNo(regNo string) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("reg_no = ?", regNo).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindStaffByID fetches a staff member by staff ID.
func (r *Repository) FindStaffByID(staffID string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.Where("staff_id = ?", staffID).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// FindStaffByCourse fetches the staff member assigned to a course. The schema
// does not forbid several staff per course; the first by staff_id wins.
func (r *Repository) FindStaffByCourse(courseID string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.Where("course_id = ?", courseID).Order("staff_id ASC").First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// ListStudents returns all registered students ordered by name.
func (r *Repository) ListStudents() ([]models.Student, error) {
	var students []models.Student
	err := r.db.Order("name ASC").Find(&students).Error
	return students, err
}

// --- operators ---

func (r *Repository) CreateOperator(op *models.Operator) error {
	return r.db.Create(op).Error
}

func (r *Repository) FindOperatorByUsername(username string) (*models.Operator, error) {
	var op models.Operator
	if err := r.db.Where("username = ?", username).First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *Repository) CountOperators() (int64, error) {
	var n int64
	err := r.db.Model(&models.Operator{}).Count(&n).Error
	return n, err
}

// --- student sessions ---

// CreateStudentSession opens a new session. The partial unique index on
// (reg_no, date) WHERE time_out IS NULL makes the "at most one open session"
// check atomic: a concurrent duplicate insert fails with a unique violation
// instead of racing a separate existence query.
func (r *Repository) CreateStudentSession(session *models.StudentSession) error {
	return r.db.Create(session).Error
}

// CloseLatestStudentSession sets time_out on the most recently created open
// session for (reg_no, date). Returns the number of sessions closed (0 or 1).
func (r *Repository) CloseLatestStudentSession(regNo, date string, exit time.Time) (int64, error) {
	var closed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var session models.StudentSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reg_no = ? AND date = ? AND time_out IS NULL", regNo, date).
			Order("created_at DESC").
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&session).Update("time_out", exit).Error; err != nil {
			return err
		}
		closed = 1
		return nil
	})
	return closed, err
}

// HasOpenStudentSession reports whether an open session exists for (reg_no, date).
func (r *Repository) HasOpenStudentSession(regNo, date string) (bool, error) {
	var n int64
	err := r.db.Model(&models.StudentSession{}).
		Where("reg_no = ? AND date = ? AND time_out IS NULL", regNo, date).
		Count(&n).Error
	return n > 0, err
}

// DeleteOpenStudentSessions removes all open sessions for a date. Archival of
// the removed rows is the storage layer's concern, not the engine's.
func (r *Repository) DeleteOpenStudentSessions(date string) (int64, error) {
	result := r.db.Where("date = ? AND time_out IS NULL", date).
		Delete(&models.StudentSession{})
	return result.RowsAffected, result.Error
}

// --- staff attendance records ---

// CreateStaffRecord inserts a per-hour attendance record. The unique index on
// (staff_id, date, hour) rejects duplicates.
func (r *Repository) CreateStaffRecord(record *models.StaffAttendanceRecord) error {
	return r.db.Create(record).Error
}

// CloseLatestStaffRecord sets time_out on the most recently created open
// record for (staff_id, date), regardless of which hour it belongs to.
func (r *Repository) CloseLatestStaffRecord(staffID, date string, exit time.Time) (int64, error) {
	var closed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var record models.StaffAttendanceRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("staff_id = ? AND date = ? AND time_out IS NULL", staffID, date).
			Order("created_at DESC").
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&record).Update("time_out", exit).Error; err != nil {
			return err
		}
		closed = 1
		return nil
	})
	return closed, err
}

// MarkOpenStaffRecordsAbsent downgrades today's unterminated staff records.
// Rows already Absent are skipped, so the reported count stays zero on
// repeated runs. A Present status is never restored afterwards.
func (r *Repository) MarkOpenStaffRecordsAbsent(date string) (int64, error) {
	result := r.db.Model(&models.StaffAttendanceRecord{}).
		Where("date = ? AND time_out IS NULL AND status <> ?", date, models.StatusAbsent).
		Update("status", models.StatusAbsent)
	return result.RowsAffected, result.Error
}

// ListStaffRecordsForDay returns a staff member's records for one date,
// ordered by hour.
func (r *Repository) ListStaffRecordsForDay(staffID, date string) ([]models.StaffAttendanceRecord, error) {
	var records []models.StaffAttendanceRecord
	err := r.db.Where("staff_id = ? AND date = ?", staffID, date).
		Order("hour ASC").
		Find(&records).Error
	return records, err
}

// CountStaffRecords counts every record ever created for a staff member.
// Each (date, hour) pair counts as one class held.
func (r *Repository) CountStaffRecords(staffID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.StaffAttendanceRecord{}).
		Where("staff_id = ?", staffID).
		Count(&n).Error
	return n, err
}

// CountClassesAttended counts the distinct (date, hour) pairs of a staff
// member's records for which the student has a session on the same date with
// time_in on or before the staff's time_out (or the hour is still open).
func (r *Repository) CountClassesAttended(staffID, regNo string) (int64, error) {
	var n int64
	err := r.db.Raw(`
		SELECT COUNT(DISTINCT (t.date, t.hour))
		FROM attendance_staff t
		JOIN attendance_students s
		  ON s.date = t.date
		 AND s.reg_no = ?
		 AND (t.time_out IS NULL OR s.time_in <= t.time_out)
		WHERE t.staff_id = ?`, regNo, staffID).Scan(&n).Error
	return n, err
}

// --- schedule ---

func (r *Repository) CountSlots() (int64, error) {
	var n int64
	err := r.db.Model(&models.ClassHourSlot{}).Count(&n).Error
	return n, err
}

func (r *Repository) CreateSlots(slots []models.ClassHourSlot) error {
	return r.db.Create(&slots).Error
}

// ListSlots returns all class-hour slots ordered by start time.
func (r *Repository) ListSlots() ([]models.ClassHourSlot, error) {
	var slots []models.ClassHourSlot
	err := r.db.Order("start_time ASC").Find(&slots).Error
	return slots, err
}
