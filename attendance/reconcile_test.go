package attendance_test

import (
	"testing"
	"time"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance"
	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDayEnd(t *testing.T) {
	env := setupTestEnv(t)
	seedStudent(t, env, "S1", "Arun Kumar")
	seedStudent(t, env, "S2", "Zara Khan")
	seedStaff(t, env, "T1", "Meera Iyer", "CS101")

	day := "2026-03-02"

	// T1 marked Hour 1 and Hour 2 but only exited once, closing Hour 2.
	require.True(t, env.ctrl.MarkStaffEntry("T1", "Hour 1", ts(t, day+" 08:35:00")).OK)
	time.Sleep(20 * time.Millisecond)
	require.True(t, env.ctrl.MarkStaffEntry("T1", "Hour 2", ts(t, day+" 09:30:00")).OK)
	require.True(t, env.ctrl.MarkStaffExit("T1", ts(t, day+" 10:10:00")).OK)

	// S1 completed a full visit; S2 entered and never exited.
	require.True(t, env.ctrl.MarkStudentEntry("S1", ts(t, day+" 09:00:00")).OK)
	require.True(t, env.ctrl.MarkStudentExit("S1", ts(t, day+" 15:00:00")).OK)
	require.True(t, env.ctrl.MarkStudentEntry("S2", ts(t, day+" 09:10:00")).OK)

	reconciler := attendance.NewReconciler(env.repo)
	summary := reconciler.Run(day)
	require.NoError(t, summary.Err())
	assert.EqualValues(t, 1, summary.StaffMarkedAbsent)
	assert.EqualValues(t, 1, summary.StudentsDeleted)

	// Hour 1 was still open and is now Absent; Hour 2 keeps Present.
	var hour1, hour2 models.StaffAttendanceRecord
	require.NoError(t, env.db.Where("staff_id = ? AND hour = ?", "T1", "Hour 1").First(&hour1).Error)
	require.NoError(t, env.db.Where("staff_id = ? AND hour = ?", "T1", "Hour 2").First(&hour2).Error)
	assert.Equal(t, models.StatusAbsent, hour1.Status)
	assert.Equal(t, models.StatusPresent, hour2.Status)

	// S2's incomplete session is gone; S1's closed session survives.
	var sessions []models.StudentSession
	require.NoError(t, env.db.Where("date = ?", day).Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, "S1", sessions[0].RegNo)
}

func TestReconcileIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	seedStudent(t, env, "S1", "Arun Kumar")
	seedStaff(t, env, "T1", "Meera Iyer", "CS101")

	day := "2026-03-02"
	require.True(t, env.ctrl.MarkStaffEntry("T1", "Hour 1", ts(t, day+" 08:35:00")).OK)
	require.True(t, env.ctrl.MarkStudentEntry("S1", ts(t, day+" 09:00:00")).OK)

	reconciler := attendance.NewReconciler(env.repo)
	first := reconciler.Run(day)
	require.NoError(t, first.Err())
	assert.EqualValues(t, 1, first.StaffMarkedAbsent)
	assert.EqualValues(t, 1, first.StudentsDeleted)

	second := reconciler.Run(day)
	require.NoError(t, second.Err())
	assert.Zero(t, second.StaffMarkedAbsent)
	assert.Zero(t, second.StudentsDeleted)

	var records, sessions int64
	require.NoError(t, env.db.Model(&models.StaffAttendanceRecord{}).Count(&records).Error)
	require.NoError(t, env.db.Model(&models.StudentSession{}).Count(&sessions).Error)
	assert.EqualValues(t, 1, records)
	assert.Zero(t, sessions)
}

func TestReconcileLeavesOtherDatesAlone(t *testing.T) {
	env := setupTestEnv(t)
	seedStudent(t, env, "S1", "Arun Kumar")
	seedStaff(t, env, "T1", "Meera Iyer", "CS101")

	require.True(t, env.ctrl.MarkStaffEntry("T1", "Hour 1", ts(t, "2026-03-02 08:35:00")).OK)
	require.True(t, env.ctrl.MarkStudentEntry("S1", ts(t, "2026-03-02 09:00:00")).OK)

	summary := attendance.NewReconciler(env.repo).Run("2026-03-03")
	require.NoError(t, summary.Err())
	assert.Zero(t, summary.StaffMarkedAbsent)
	assert.Zero(t, summary.StudentsDeleted)

	var record models.StaffAttendanceRecord
	require.NoError(t, env.db.Where("staff_id = ?", "T1").First(&record).Error)
	assert.Equal(t, models.StatusPresent, record.Status)

	var open int64
	require.NoError(t, env.db.Model(&models.StudentSession{}).
		Where("time_out IS NULL").Count(&open).Error)
	assert.EqualValues(t, 1, open)
}
