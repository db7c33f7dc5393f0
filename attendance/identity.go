package attendance

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

// ActorKind distinguishes the two attendance subject classes.
type ActorKind string

const (
	ActorStudent ActorKind = "student"
	ActorStaff   ActorKind = "staff"
)

// Sentinel outcomes of identity resolution.
var (
	ErrNoFace          = errors.New("no face found in frame")
	ErrUnknownIdentity = errors.New("face does not match any registered identity")
)

// Resolver matches a captured frame against registered biometric templates
// and returns the subject's reg_no or staff_id. Implementations live outside
// this module; the engine only consumes the result.
type Resolver interface {
	Resolve(frame []byte, kind ActorKind) (string, error)
}

// LivenessGate checks a captured frame for spoofing before resolution.
type LivenessGate interface {
	Check(frame []byte) (bool, error)
}

// TemplateCache is a read-through cache of the biometric templates stored
// with each identity, for resolver implementations to match against. It is
// reloaded synchronously after every registration write.
type TemplateCache struct {
	db *gorm.DB

	mu       sync.RWMutex
	students map[string]string
	staff    map[string]string
}

func NewTemplateCache(db *gorm.DB) *TemplateCache {
	return &TemplateCache{
		db:       db,
		students: map[string]string{},
		staff:    map[string]string{},
	}
}

// Reload replaces the cached templates with the current database contents.
func (c *TemplateCache) Reload() error {
	var students []models.Student
	if err := c.db.Select("reg_no", "face_template").Find(&students).Error; err != nil {
		return err
	}
	var staff []models.Staff
	if err := c.db.Select("staff_id", "face_template").Find(&staff).Error; err != nil {
		return err
	}

	studentMap := make(map[string]string, len(students))
	for _, s := range students {
		studentMap[s.RegNo] = s.FaceTemplate
	}
	staffMap := make(map[string]string, len(staff))
	for _, s := range staff {
		staffMap[s.StaffID] = s.FaceTemplate
	}

	c.mu.Lock()
	c.students = studentMap
	c.staff = staffMap
	c.mu.Unlock()
	return nil
}

// Lookup returns the stored template for an identity, if registered.
func (c *TemplateCache) Lookup(kind ActorKind, id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if kind == ActorStaff {
		t, ok := c.staff[id]
		return t, ok
	}
	t, ok := c.students[id]
	return t, ok
}
