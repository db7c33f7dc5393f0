package attendance

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

// Handler wires the HTTP surface to the session engine components.
type Handler struct {
	Config     Config
	Repo       *Repository
	Controller *Controller
	Schedule   *ScheduleRegistry
	Reports    *Aggregator
	Templates  *TemplateCache
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resolveIdentityRequest struct {
	Frame string `json:"frame" binding:"required"`
	Kind  string `json:"kind" binding:"required,oneof=student staff"`
}

type registerStudentRequest struct {
	RegNo        string `json:"reg_no" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Department   string `json:"department"`
	FaceTemplate string `json:"face_template" binding:"required"`
}

type registerStaffRequest struct {
	StaffID      string `json:"staff_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	CourseID     string `json:"course_id"`
	Subject      string `json:"subject"`
	FaceTemplate string `json:"face_template" binding:"required"`
}

type enrollRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	RegNo    string `json:"reg_no" binding:"required"`
}

type staffEntryRequest struct {
	Hours []string `json:"hours" binding:"required,min=1"`
}

// OperatorLogin verifies operator credentials and returns an access token.
func (h *Handler) OperatorLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	op, err := h.Repo.FindOperatorByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := GenerateAccessToken(*op, h.Config.JWTSecret, h.Config.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operator":     op,
		"access_token": token,
	})
}

// ResolveIdentity runs the liveness gate and the face resolver over a
// captured frame and exchanges a successful match for a short-lived identity
// token. Mounted only when a Resolver is configured.
func (h *Handler) ResolveIdentity(c *gin.Context) {
	var req resolveIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := base64.StdEncoding.DecodeString(req.Frame)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame must be base64 encoded"})
		return
	}
	kind := ActorKind(req.Kind)

	if h.Config.Liveness != nil {
		live, err := h.Config.Liveness.Check(frame)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "liveness check unavailable"})
			return
		}
		if !live {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "liveness check failed"})
			return
		}
	}

	subjectID, err := h.Config.Resolver.Resolve(frame, kind)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFace):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no face found"})
		case errors.Is(err, ErrUnknownIdentity):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown " + req.Kind})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "identity resolution failed"})
		}
		return
	}

	token, err := IssueIdentityToken(subjectID, kind, h.Config.JWTSecret, h.Config.IdentityTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue identity token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject_id":     subjectID,
		"kind":           kind,
		"identity_token": token,
	})
}

// StudentEntry opens a presence session for the authenticated student.
func (h *Handler) StudentEntry(c *gin.Context) {
	regNo := c.GetString("subjectID")
	res := h.Controller.MarkStudentEntry(regNo, time.Now())
	c.JSON(res.HTTPStatus(), res)
}

// StudentExit closes the authenticated student's open session.
func (h *Handler) StudentExit(c *gin.Context) {
	regNo := c.GetString("subjectID")
	res := h.Controller.MarkStudentExit(regNo, time.Now())
	c.JSON(res.HTTPStatus(), res)
}

// StaffEntry marks the authenticated staff member present for each selected
// hour. Hours are marked independently; ones already marked fail without
// rolling back the others.
func (h *Handler) StaffEntry(c *gin.Context) {
	var req staffEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staffID := c.GetString("subjectID")
	now := time.Now()

	type hourOutcome struct {
		Hour string `json:"hour"`
		Result
	}
	outcomes := make([]hourOutcome, 0, len(req.Hours))
	anyMarked := false
	for _, hour := range req.Hours {
		res := h.Controller.MarkStaffEntry(staffID, hour, now)
		if res.OK {
			anyMarked = true
		}
		outcomes = append(outcomes, hourOutcome{Hour: hour, Result: res})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       anyMarked,
		"outcomes": outcomes,
	})
}

// StaffExit closes the authenticated staff member's most recent open record.
func (h *Handler) StaffExit(c *gin.Context) {
	staffID := c.GetString("subjectID")
	res := h.Controller.MarkStaffExit(staffID, time.Now())
	c.JSON(res.HTTPStatus(), res)
}

// RegisterStudent creates a student identity with its biometric template and
// reloads the template cache so the resolver sees it immediately.
func (h *Handler) RegisterStudent(c *gin.Context) {
	var req registerStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student := models.Student{
		RegNo:        req.RegNo,
		Name:         req.Name,
		Department:   req.Department,
		FaceTemplate: req.FaceTemplate,
	}
	if err := h.Repo.CreateStudent(&student); err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "registration number already exists"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to register student"})
		return
	}

	if err := h.Templates.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "student saved but template cache reload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"student": student})
}

// RegisterStaff creates a staff identity with its biometric template.
func (h *Handler) RegisterStaff(c *gin.Context) {
	var req registerStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff := models.Staff{
		StaffID:      req.StaffID,
		Name:         req.Name,
		CourseID:     req.CourseID,
		Subject:      req.Subject,
		FaceTemplate: req.FaceTemplate,
	}
	if err := h.Repo.CreateStaff(&staff); err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "staff ID already exists"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to register staff"})
		return
	}

	if err := h.Templates.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "staff saved but template cache reload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"staff": staff})
}

// EnrollStudent adds a student to a course roster.
func (h *Handler) EnrollStudent(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enrollment := models.Enrollment{CourseID: req.CourseID, RegNo: req.RegNo}
	if err := h.Config.DB.Create(&enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "student is already enrolled in this course"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enroll student"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"enrollment": enrollment})
}

// ListStudents returns the roster of registered students ordered by name.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.Repo.ListStudents()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to list students"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// ListSchedule returns the class-hour slots ordered by start time.
func (h *Handler) ListSchedule(c *gin.Context) {
	slots, err := h.Schedule.ListSlots()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load class schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": slots})
}

// CourseReport renders the plain-text attendance report for a course.
// Unknown courses and unexpected failures yield a readable message in the
// body rather than an error payload.
func (h *Handler) CourseReport(c *gin.Context) {
	courseID := c.Param("course_id")
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(DateLayout)
	}
	c.String(http.StatusOK, h.Reports.RenderCourseReport(courseID, date))
}
