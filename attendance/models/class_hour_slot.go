package models

// ClassHourSlot is one named teaching period in the fixed daily schedule.
// Seeded once, read-only afterwards. The deadline and grace fields are
// configuration data; the entry/exit controller does not enforce them.
type ClassHourSlot struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	HourName          string `gorm:"size:50;uniqueIndex;not null" json:"hour_name"`
	StartTime         string `gorm:"size:8;not null" json:"start_time"`
	EndTime           string `gorm:"size:8;not null" json:"end_time"`
	EntryDeadline     string `gorm:"size:8;not null" json:"entry_deadline"`
	EarlyEntryMinutes int    `gorm:"default:15" json:"early_entry_minutes"`
}

func (ClassHourSlot) TableName() string {
	return "class_schedule"
}
