package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Student{},
		&Staff{},
		&ClassHourSlot{},
		&StudentSession{},
		&StaffAttendanceRecord{},
		&Enrollment{},
		&Operator{},
	)
}
