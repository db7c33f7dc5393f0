package attendance

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

// ErrNoStaffForCourse is returned when no staff member is assigned to the
// requested course.
var ErrNoStaffForCourse = errors.New("no staff member found for course")

// StudentReportLine is one enrolled student's row in a course report.
type StudentReportLine struct {
	RegNo           string  `json:"reg_no"`
	Name            string  `json:"name"`
	DailyStatus     string  `json:"daily_status"`
	ClassesAttended int64   `json:"classes_attended"`
	TotalClasses    int64   `json:"total_classes"`
	Percentage      float64 `json:"percentage"`
	// HasOverall is false when no classes have been held yet, in which case
	// the overall figures render as N/A.
	HasOverall bool `json:"has_overall"`
}

// CourseReport is one day's attendance picture for a course: the instructor's
// per-hour marks, the running class total, and every enrolled student's
// standing.
type CourseReport struct {
	CourseID         string                         `json:"course_id"`
	Date             string                         `json:"date"`
	StaffID          string                         `json:"staff_id"`
	StaffName        string                         `json:"staff_name"`
	InstructorHours  []models.StaffAttendanceRecord `json:"instructor_hours"`
	TotalClassesHeld int64                          `json:"total_classes_held"`
	Students         []StudentReportLine            `json:"students"`
	PresentToday     int                            `json:"present_today"`
	AbsentToday      int                            `json:"absent_today"`
}

// Aggregator computes course reports. Read-only against the session store and
// the enrollment provider; it never mutates state.
type Aggregator struct {
	repo       *Repository
	enrollment EnrollmentProvider
}

func NewAggregator(repo *Repository, enrollment EnrollmentProvider) *Aggregator {
	return &Aggregator{repo: repo, enrollment: enrollment}
}

// BuildCourseReport assembles the report for a course on the given date
// (DateLayout). Returns ErrNoStaffForCourse when the course has no instructor.
func (a *Aggregator) BuildCourseReport(courseID, date string) (*CourseReport, error) {
	staff, err := a.repo.FindStaffByCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNoStaffForCourse, courseID)
		}
		return nil, err
	}

	hours, err := a.repo.ListStaffRecordsForDay(staff.StaffID, date)
	if err != nil {
		return nil, err
	}

	totalClasses, err := a.repo.CountStaffRecords(staff.StaffID)
	if err != nil {
		return nil, err
	}

	enrolled, err := a.enrollment.ListEnrolled(courseID)
	if err != nil {
		return nil, err
	}

	report := &CourseReport{
		CourseID:         courseID,
		Date:             date,
		StaffID:          staff.StaffID,
		StaffName:        staff.Name,
		InstructorHours:  hours,
		TotalClassesHeld: totalClasses,
	}

	for _, student := range enrolled {
		line := StudentReportLine{
			RegNo:        student.RegNo,
			Name:         student.Name,
			DailyStatus:  "Absent / Exited",
			TotalClasses: totalClasses,
		}

		open, err := a.repo.HasOpenStudentSession(student.RegNo, date)
		if err != nil {
			return nil, err
		}
		if open {
			line.DailyStatus = "Present"
			report.PresentToday++
		}

		if totalClasses > 0 {
			attended, err := a.repo.CountClassesAttended(staff.StaffID, student.RegNo)
			if err != nil {
				return nil, err
			}
			line.ClassesAttended = attended
			line.Percentage = float64(attended) / float64(totalClasses) * 100
			line.HasOverall = true
		}

		report.Students = append(report.Students, line)
	}
	report.AbsentToday = len(report.Students) - report.PresentToday

	return report, nil
}

// RenderCourseReport builds and formats the report. It never returns an
// error: failures degrade to a human-readable message in the output.
func (a *Aggregator) RenderCourseReport(courseID, date string) string {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return "Please enter a Course ID to generate a report."
	}

	report, err := a.BuildCourseReport(courseID, date)
	if err != nil {
		if errors.Is(err, ErrNoStaffForCourse) {
			return fmt.Sprintf("Report Error:\nNo staff member found for Course ID '%s'.", courseID)
		}
		return fmt.Sprintf("An unexpected error occurred while generating the report:\n\n%v", err)
	}
	return report.Render()
}

// Render formats the report as fixed-width text.
func (r *CourseReport) Render() string {
	heavy := strings.Repeat("=", 70)
	light := strings.Repeat("-", 70)

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(heavy)
	line("ATTENDANCE REPORT FOR COURSE: %s", strings.ToUpper(r.CourseID))
	line("Date: %s", r.Date)
	line(heavy)
	line("Instructor: %s (ID: %s)", r.StaffName, r.StaffID)
	line("")

	if len(r.InstructorHours) > 0 {
		line("Instructor Attendance (Today):")
		for _, record := range r.InstructorHours {
			line("  - %s: %s", record.Hour, record.Status)
		}
	} else {
		line("Instructor Attendance: Not Marked Today")
	}
	line(light)

	line("Overall Class Summary (Till Today):")
	if r.TotalClassesHeld > 0 {
		line("  Total Classes Conducted: %d", r.TotalClassesHeld)
	} else {
		line("  No classes have been conducted yet.")
	}
	line(light)

	if len(r.Students) == 0 {
		line("No students are enrolled in this course.")
		b.WriteString(heavy)
		return b.String()
	}

	line("Student Attendance:")
	for _, s := range r.Students {
		line("  - %s (%s):", s.Name, s.RegNo)
		line("    Today's Status: %s", s.DailyStatus)
		if s.HasOverall {
			line("    Overall Attendance: %d / %d classes", s.ClassesAttended, s.TotalClasses)
			line("    Percentage: %.2f%%", s.Percentage)
		} else {
			line("    Overall Attendance: N/A")
		}
	}

	line("")
	line(strings.Repeat("-", 25))
	line("Today's Summary:")
	line("  Total Enrolled: %d", len(r.Students))
	line("  Present (Currently): %d", r.PresentToday)
	line("  Absent / Exited:   %d", r.AbsentToday)
	b.WriteString(heavy)
	return b.String()
}
