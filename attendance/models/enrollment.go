package models

type Enrollment struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID string `gorm:"size:100;not null;uniqueIndex:idx_course_student" json:"course_id"`
	RegNo    string `gorm:"size:50;not null;uniqueIndex:idx_course_student" json:"reg_no"`
}

func (Enrollment) TableName() string {
	return "student_enrollments"
}
