package attendance_test

import (
	"sync"
	"testing"
	"time"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance"
	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err)
	return parsed
}

func seedStudent(t *testing.T, env *testEnv, regNo, name string) {
	t.Helper()
	require.NoError(t, env.repo.CreateStudent(&models.Student{
		RegNo:        regNo,
		Name:         name,
		FaceTemplate: "tmpl-" + regNo,
	}))
}

func seedStaff(t *testing.T, env *testEnv, staffID, name, courseID string) {
	t.Helper()
	require.NoError(t, env.repo.CreateStaff(&models.Staff{
		StaffID:      staffID,
		Name:         name,
		CourseID:     courseID,
		FaceTemplate: "tmpl-" + staffID,
	}))
}

func TestStudentSessionLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	seedStudent(t, env, "S1", "Arun Kumar")

	entry := ts(t, "2026-03-02 09:00:00")
	res := env.ctrl.MarkStudentEntry("S1", entry)
	require.True(t, res.OK, res.Message)

	// Entering again before exiting is a conflict.
	res = env.ctrl.MarkStudentEntry("S1", ts(t, "2026-03-02 09:05:00"))
	assert.False(t, res.OK)
	assert.Equal(t, attendance.CodeDuplicateOpenSession, res.Code)

	exit := ts(t, "2026-03-02 09:50:00")
	res = env.ctrl.MarkStudentExit("S1", exit)
	require.True(t, res.OK, res.Message)

	var session models.StudentSession
	require.NoError(t, env.db.Where("reg_no = ?", "S1").First(&session).Error)
	assert.Equal(t, "2026-03-02", session.Date)
	assert.True(t, session.TimeIn.Equal(entry))
	require.NotNil(t, session.TimeOut)
	assert.True(t, session.TimeOut.Equal(exit))

	// A fresh entry after exiting opens a second session for the same day.
	res = env.ctrl.MarkStudentEntry("S1", ts(t, "2026-03-02 13:00:00"))
	require.True(t, res.OK, res.Message)

	var count int64
	require.NoError(t, env.db.Model(&models.StudentSession{}).
		Where("reg_no = ? AND date = ?", "S1", "2026-03-02").
		Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestStudentExitWithoutEntry(t *testing.T) {
	env := setupTestEnv(t)
	seedStudent(t, env, "S1", "Arun Kumar")

	res := env.ctrl.MarkStudentExit("S1", ts(t, "2026-03-02 10:00:00"))
	assert.False(t, res.OK)
	assert.Equal(t, attendance.CodeNoOpenSession, res.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.StudentSession{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStudentEntryUnknownIdentity(t *testing.T) {
	env := setupTestEnv(t)

	res := env.ctrl.MarkStudentEntry("ghost", ts(t, "2026-03-02 09:00:00"))
	assert.False(t, res.OK)
	assert.Equal(t, attendance.CodeUnknownIdentity, res.Code)

	res = env.ctrl.MarkStudentEntry("  ", ts(t, "2026-03-02 09:00:00"))
	assert.False(t, res.OK)
	assert.Equal(t, attendance.CodeValidation, res.Code)
}

func TestConcurrentStudentEntries(t *testing.T) {
	env := setupTestEnv(t)
	seedStudent(t, env, "S1", "Arun Kumar")

	const attempts = 8
	now := time.Now()

	var wg sync.WaitGroup
	results := make([]attendance.Result, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = env.ctrl.MarkStudentEntry("S1", now)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, res := range results {
		switch {
		case res.OK:
			successes++
		case res.Code == attendance.CodeDuplicateOpenSession:
			conflicts++
		default:
			t.Fatalf("unexpected result: %+v", res)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	var open int64
	require.NoError(t, env.db.Model(&models.StudentSession{}).
		Where("reg_no = ? AND time_out IS NULL", "S1").
		Count(&open).Error)
	assert.EqualValues(t, 1, open)
}

func TestStaffDuplicateHourRejected(t *testing.T) {
	env := setupTestEnv(t)
	seedStaff(t, env, "T1", "Meera Iyer", "CS101")

	now := ts(t, "2026-03-02 08:35:00")
	res := env.ctrl.MarkStaffEntry("T1", "Hour 1", now)
	require.True(t, res.OK, res.Message)

	res = env.ctrl.MarkStaffEntry("T1", "Hour 1", ts(t, "2026-03-02 08:40:00"))
	assert.False(t, res.OK)
	assert.Equal(t, attendance.CodeDuplicateHourRecord, res.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.StaffAttendanceRecord{}).
		Where("staff_id = ?", "T1").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStaffExitClosesMostRecentOpenRecord(t *testing.T) {
	env := setupTestEnv(t)
	seedStaff(t, env, "T1", "Meera Iyer", "CS101")

	res := env.ctrl.MarkStaffEntry("T1", "Hour 1", ts(t, "2026-03-02 08:35:00"))
	require.True(t, res.OK, res.Message)
	time.Sleep(20 * time.Millisecond) // separate created_at timestamps
	res = env.ctrl.MarkStaffEntry("T1", "Hour 2", ts(t, "2026-03-02 09:30:00"))
	require.True(t, res.OK, res.Message)

	exit := ts(t, "2026-03-02 10:10:00")
	res = env.ctrl.MarkStaffExit("T1", exit)
	require.True(t, res.OK, res.Message)

	var hour1, hour2 models.StaffAttendanceRecord
	require.NoError(t, env.db.Where("staff_id = ? AND hour = ?", "T1", "Hour 1").First(&hour1).Error)
	require.NoError(t, env.db.Where("staff_id = ? AND hour = ?", "T1", "Hour 2").First(&hour2).Error)

	assert.Nil(t, hour1.TimeOut)
	require.NotNil(t, hour2.TimeOut)
	assert.True(t, hour2.TimeOut.Equal(exit))
}

func TestStaffExitWithoutEntry(t *testing.T) {
	env := setupTestEnv(t)
	seedStaff(t, env, "T1", "Meera Iyer", "CS101")

	res := env.ctrl.MarkStaffExit("T1", ts(t, "2026-03-02 10:00:00"))
	assert.False(t, res.OK)
	assert.Equal(t, attendance.CodeNoOpenSession, res.Code)
}
