package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ahaldeman-8thlight/video-class-app/internal/errs"
	"github.com/ahaldeman-8thlight/video-class-app/internal/model"
	"github.com/ahaldeman-8thlight/video-class-app/internal/service"
)

// ClassHandler handles REST API for video classes.
type ClassHandler struct {
	svc service.ClassServicer
}

// NewClassHandler creates a class handler.
func NewClassHandler(svc service.ClassServicer) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// CreateClass godoc
// POST /api/classes/?teacher_id=<id>
func (h *ClassHandler) CreateClass(c *gin.Context) {
	teacherID, ok := queryID(c, "teacher_id")
	if !ok {
		return
	}
	var req model.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	cls, err := h.svc.Create(teacherID, req)
	if err != nil {
		if errors.Is(err, errs.ErrNotTeacher) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only teachers can create classes"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create class"})
		return
	}
	c.JSON(http.StatusCreated, cls)
}

// ListClasses godoc
// GET /api/classes/
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list classes"})
		return
	}
	c.JSON(http.StatusOK, classes)
}

// GetToken godoc
// GET /api/classes/:id/token?user_id=<id>
func (h *ClassHandler) GetToken(c *gin.Context) {
	classID, ok := paramID(c)
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}
	creds, err := h.svc.Credentials(classID, userID)
	if err != nil {
		if errors.Is(err, errs.ErrClassNotFound) || errors.Is(err, errs.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class or user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, creds)
}

// StartClass godoc
// POST /api/classes/:id/start?teacher_id=<id>
func (h *ClassHandler) StartClass(c *gin.Context) {
	h.setActive(c, true)
}

// EndClass godoc
// POST /api/classes/:id/end?teacher_id=<id>
func (h *ClassHandler) EndClass(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ClassHandler) setActive(c *gin.Context, start bool) {
	classID, ok := paramID(c)
	if !ok {
		return
	}
	teacherID, ok := queryID(c, "teacher_id")
	if !ok {
		return
	}
	var err error
	if start {
		err = h.svc.Start(classID, teacherID)
	} else {
		err = h.svc.End(classID, teacherID)
	}
	if err != nil {
		if errors.Is(err, errs.ErrNotClassTeacher) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update class"})
		return
	}
	msg := "Class ended successfully"
	if start {
		msg = "Class started successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// EnrollStudent godoc
// POST /api/classes/:id/enroll?student_id=<id>
func (h *ClassHandler) EnrollStudent(c *gin.Context) {
	classID, ok := paramID(c)
	if !ok {
		return
	}
	studentID, ok := queryID(c, "student_id")
	if !ok {
		return
	}
	if err := h.svc.Enroll(classID, studentID); err != nil {
		switch {
		case errors.Is(err, errs.ErrClassNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		case errors.Is(err, errs.ErrNotStudent):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only students can enroll"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enroll"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enrolled successfully"})
}

// GetEnrollments godoc
// GET /api/classes/:id/enrollments
func (h *ClassHandler) GetEnrollments(c *gin.Context) {
	classID, ok := paramID(c)
	if !ok {
		return
	}
	enrollments, err := h.svc.Enrollments(classID)
	if err != nil {
		if errors.Is(err, errs.ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get enrollments"})
		return
	}
	c.JSON(http.StatusOK, model.ClassEnrollmentsResponse{
		ClassID:     classID,
		Enrollments: enrollments,
	})
}

// paramID parses the numeric :class_id path param, replying 400 on failure.
// Any integer is accepted; nonexistent records surface as 404/403 downstream.
func paramID(c *gin.Context) (uint, bool) {
	raw := c.Param("class_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_id must be an integer"})
		return 0, false
	}
	return uint(id), true
}

// queryID parses a numeric query param, replying 400 when missing or invalid.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return uint(id), true
}
