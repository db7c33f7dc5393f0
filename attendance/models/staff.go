package models

import "time"

type Staff struct {
	ID           uint                    `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID      string                  `gorm:"size:50;uniqueIndex;not null" json:"staff_id"`
	Name         string                  `gorm:"size:200;not null" json:"name"`
	CourseID     string                  `gorm:"size:100;index" json:"course_id,omitempty"`
	Subject      string                  `gorm:"size:100" json:"subject,omitempty"`
	FaceTemplate string                  `gorm:"type:text;not null" json:"-"`
	Records      []StaffAttendanceRecord `gorm:"foreignKey:StaffID;references:StaffID;constraint:OnDelete:CASCADE" json:"records,omitempty"`
	CreatedAt    time.Time               `gorm:"autoCreateTime" json:"created_at"`
}

func (Staff) TableName() string {
	return "staff"
}
