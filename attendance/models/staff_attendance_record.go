package models

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// StaffAttendanceRecord is one staff member's attendance for one class hour
// on one date. The composite unique index rejects a second record for the
// same (staff_id, date, hour).
type StaffAttendanceRecord struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID   string     `gorm:"size:50;not null;uniqueIndex:idx_staff_day_hour" json:"staff_id"`
	Date      string     `gorm:"size:10;not null;uniqueIndex:idx_staff_day_hour" json:"date"`
	Hour      string     `gorm:"size:20;not null;uniqueIndex:idx_staff_day_hour" json:"hour"`
	TimeIn    time.Time  `gorm:"not null" json:"time_in"`
	TimeOut   *time.Time `json:"time_out,omitempty"`
	Status    string     `gorm:"size:10;not null;default:Present" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (StaffAttendanceRecord) TableName() string {
	return "attendance_staff"
}
