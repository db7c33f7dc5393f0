package models

import "time"

// StudentSession is one entry/exit presence session. A student may have many
// sessions per day; the partial unique index keeps at most one of them open
// (time_out IS NULL) per (reg_no, date), so concurrent entry attempts cannot
// both succeed.
type StudentSession struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RegNo     string     `gorm:"size:50;not null;index:idx_student_open_session,unique,where:time_out IS NULL" json:"reg_no"`
	Date      string     `gorm:"size:10;not null;index;index:idx_student_open_session,unique,where:time_out IS NULL" json:"date"`
	TimeIn    time.Time  `gorm:"not null" json:"time_in"`
	TimeOut   *time.Time `json:"time_out,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (StudentSession) TableName() string {
	return "attendance_students"
}
