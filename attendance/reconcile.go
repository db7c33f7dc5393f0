package attendance

import "errors"

// Reconciler finalizes unterminated sessions after the last class hour.
// Safe to re-run for the same date: both phases only touch rows that still
// have time_out IS NULL.
type Reconciler struct {
	repo *Repository
}

func NewReconciler(repo *Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

// ReconcileSummary reports the outcome of one reconciliation run. The two
// phases run independently, so each carries its own count and error.
type ReconcileSummary struct {
	Date string `json:"date"`

	// Staff phase: open records downgraded to Absent.
	StaffMarkedAbsent int64 `json:"staff_marked_absent"`
	StaffErr          error `json:"-"`

	// Student phase: open sessions deleted. A student with no surviving row
	// for a date simply did not complete a valid visit that day.
	StudentsDeleted int64 `json:"students_deleted"`
	StudentErr      error `json:"-"`
}

// Err joins the phase errors, nil when both phases succeeded.
func (s ReconcileSummary) Err() error {
	return errors.Join(s.StaffErr, s.StudentErr)
}

// Run executes both reconciliation phases for the given date (DateLayout).
// A failure in one phase does not stop the other.
func (r *Reconciler) Run(date string) ReconcileSummary {
	summary := ReconcileSummary{Date: date}
	summary.StaffMarkedAbsent, summary.StaffErr = r.repo.MarkOpenStaffRecordsAbsent(date)
	summary.StudentsDeleted, summary.StudentErr = r.repo.DeleteOpenStudentSessions(date)
	return summary
}
