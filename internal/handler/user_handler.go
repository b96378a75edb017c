package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahaldeman-8thlight/video-class-app/internal/errs"
	"github.com/ahaldeman-8thlight/video-class-app/internal/model"
	"github.com/ahaldeman-8thlight/video-class-app/internal/service"
)

// UserHandler handles REST API for users.
type UserHandler struct {
	svc service.UserServicer
}

// NewUserHandler creates a user handler.
func NewUserHandler(svc service.UserServicer) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUser godoc
// POST /api/users/
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be teacher or student"})
		return
	}
	usr, err := h.svc.Create(req)
	if err != nil {
		if errors.Is(err, errs.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, usr)
}
