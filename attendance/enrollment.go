package attendance

import "gorm.io/gorm"

// Enrollee is one student on a course roster.
type Enrollee struct {
	RegNo string `json:"reg_no"`
	Name  string `json:"name"`
}

// EnrollmentProvider supplies the students enrolled in a course, ordered by
// name. The roster itself is an input to reporting, not part of the session
// engine.
type EnrollmentProvider interface {
	ListEnrolled(courseID string) ([]Enrollee, error)
}

type dbEnrollmentProvider struct {
	db *gorm.DB
}

// NewDBEnrollmentProvider returns an EnrollmentProvider backed by the
// student_enrollments table.
func NewDBEnrollmentProvider(db *gorm.DB) EnrollmentProvider {
	return &dbEnrollmentProvider{db: db}
}

func (p *dbEnrollmentProvider) ListEnrolled(courseID string) ([]Enrollee, error) {
	var enrolled []Enrollee
	err := p.db.Raw(`
		SELECT s.reg_no, s.name
		FROM students s
		JOIN student_enrollments se ON se.reg_no = s.reg_no
		WHERE se.course_id = ?
		ORDER BY s.name ASC`, courseID).Scan(&enrolled).Error
	return enrolled, err
}
