package attendance

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultAccessTokenTTL   = 12 * time.Hour
	DefaultIdentityTokenTTL = 2 * time.Minute
)

// Config holds the configuration for the attendance module.
type Config struct {
	DB        *gorm.DB
	JWTSecret string

	// AccessTokenTTL bounds operator sessions; IdentityTokenTTL bounds the
	// window between face resolution and the actual entry/exit mark.
	AccessTokenTTL   time.Duration
	IdentityTokenTTL time.Duration

	AutoMigrate  bool
	SeedSchedule bool

	// AdminUsername/AdminPassword bootstrap the first operator account when
	// the operators table is empty.
	AdminUsername string
	AdminPassword string

	// Resolver and Liveness are the external biometric collaborators. When
	// Resolver is nil the identity-resolution route is not mounted and
	// callers must obtain identity tokens elsewhere.
	Resolver Resolver
	Liveness LivenessGate

	// Enrollment supplies course rosters for reporting. Defaults to the
	// built-in student_enrollments table.
	Enrollment EnrollmentProvider
}

func (c *Config) defaults() {
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if c.IdentityTokenTTL == 0 {
		c.IdentityTokenTTL = DefaultIdentityTokenTTL
	}
	if c.Enrollment == nil && c.DB != nil {
		c.Enrollment = NewDBEnrollmentProvider(c.DB)
	}
}

func (c *Config) validate() error {
	if c.DB == nil {
		return errors.New("attendance: DB is required")
	}
	if c.JWTSecret == "" {
		return errors.New("attendance: JWTSecret is required")
	}
	return nil
}
