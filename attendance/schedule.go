package attendance

import (
	"sync"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

// defaultSchedule is the stock eight-hour timetable, inserted only when the
// class_schedule table is empty.
var defaultSchedule = []models.ClassHourSlot{
	{HourName: "Hour 1", StartTime: "08:30:00", EndTime: "09:20:00", EntryDeadline: "09:15:00", EarlyEntryMinutes: 15},
	{HourName: "Hour 2", StartTime: "09:25:00", EndTime: "10:15:00", EntryDeadline: "10:10:00", EarlyEntryMinutes: 15},
	{HourName: "Hour 3", StartTime: "10:20:00", EndTime: "11:10:00", EntryDeadline: "11:05:00", EarlyEntryMinutes: 15},
	{HourName: "Hour 4", StartTime: "11:15:00", EndTime: "12:05:00", EntryDeadline: "12:00:00", EarlyEntryMinutes: 15},
	{HourName: "Hour 5", StartTime: "13:00:00", EndTime: "13:50:00", EntryDeadline: "13:45:00", EarlyEntryMinutes: 15},
	{HourName: "Hour 6", StartTime: "13:55:00", EndTime: "14:45:00", EntryDeadline: "14:40:00", EarlyEntryMinutes: 15},
	{HourName: "Hour 7", StartTime: "14:50:00", EndTime: "15:40:00", EntryDeadline: "15:35:00", EarlyEntryMinutes: 15},
	{HourName: "Hour 8", StartTime: "15:45:00", EndTime: "16:35:00", EntryDeadline: "16:30:00", EarlyEntryMinutes: 15},
}

// ScheduleRegistry serves the fixed daily class-hour slots through a
// read-through cache. The schedule is immutable after seeding, so the cache
// only needs reloading after Seed.
type ScheduleRegistry struct {
	repo *Repository

	mu    sync.RWMutex
	slots []models.ClassHourSlot
}

func NewScheduleRegistry(repo *Repository) *ScheduleRegistry {
	return &ScheduleRegistry{repo: repo}
}

// Seed inserts the default timetable if no slots exist yet. Idempotent.
func (s *ScheduleRegistry) Seed() error {
	n, err := s.repo.CountSlots()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if err := s.repo.CreateSlots(defaultSchedule); err != nil {
		return err
	}
	return s.Reload()
}

// ListSlots returns all class-hour slots ordered by start time, loading them
// from the store on first use.
func (s *ScheduleRegistry) ListSlots() ([]models.ClassHourSlot, error) {
	s.mu.RLock()
	cached := s.slots
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots, nil
}

// Reload refreshes the cached slots from the store.
func (s *ScheduleRegistry) Reload() error {
	slots, err := s.repo.ListSlots()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slots = slots
	s.mu.Unlock()
	return nil
}
