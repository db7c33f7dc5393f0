package attendance

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

// RegisterAttendanceRoutes mounts the attendance engine on the given router
// group.
// Public routes: /login, /identity/resolve (when a Resolver is configured).
// Identity-token routes: /students/entry, /students/exit, /staff/entry,
// /staff/exit.
// Operator-token routes: registration, enrollment, roster, schedule, reports.
func RegisterAttendanceRoutes(rg *gin.RouterGroup, cfg Config) error {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return err
	}

	if cfg.AutoMigrate {
		if err := models.AutoMigrate(cfg.DB); err != nil {
			return err
		}
	}

	repo := NewRepository(cfg.DB)

	schedule := NewScheduleRegistry(repo)
	if cfg.SeedSchedule {
		if err := schedule.Seed(); err != nil {
			return err
		}
	}

	if err := bootstrapAdmin(repo, cfg); err != nil {
		return err
	}

	templates := NewTemplateCache(cfg.DB)
	if err := templates.Reload(); err != nil {
		return err
	}

	handler := &Handler{
		Config:     cfg,
		Repo:       repo,
		Controller: NewController(repo),
		Schedule:   schedule,
		Reports:    NewAggregator(repo, cfg.Enrollment),
		Templates:  templates,
	}

	// Public routes
	rg.POST("/login", handler.OperatorLogin)
	if cfg.Resolver != nil {
		rg.POST("/identity/resolve", handler.ResolveIdentity)
	}

	// Marking routes, gated by identity tokens
	students := rg.Group("/students", IdentityMiddleware(cfg.JWTSecret, ActorStudent))
	students.POST("/entry", handler.StudentEntry)
	students.POST("/exit", handler.StudentExit)

	staff := rg.Group("/staff", IdentityMiddleware(cfg.JWTSecret, ActorStaff))
	staff.POST("/entry", handler.StaffEntry)
	staff.POST("/exit", handler.StaffExit)

	// Administrative routes, gated by operator tokens
	admin := rg.Group("", OperatorMiddleware(cfg.JWTSecret))
	admin.POST("/register/student", handler.RegisterStudent)
	admin.POST("/register/staff", handler.RegisterStaff)
	admin.POST("/enrollments", handler.EnrollStudent)
	admin.GET("/students", handler.ListStudents)
	admin.GET("/schedule", handler.ListSchedule)
	admin.GET("/reports/course/:course_id", handler.CourseReport)

	return nil
}

// bootstrapAdmin seeds the first operator account when none exists yet.
func bootstrapAdmin(repo *Repository, cfg Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	n, err := repo.CountOperators()
	if err != nil || n > 0 {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return repo.CreateOperator(&models.Operator{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         "admin",
	})
}
