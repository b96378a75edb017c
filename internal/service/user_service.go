package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/ahaldeman-8thlight/video-class-app/internal/errs"
	"github.com/ahaldeman-8thlight/video-class-app/internal/model"
)

// UserServicer is the user API surface for handlers.
type UserServicer interface {
	Create(req model.CreateUserRequest) (*model.UserResponse, error)
	Get(userID uint) (*model.UserResponse, error)
}

// UserService persists user accounts.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a user service.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create inserts a new user. Duplicate email yields errs.ErrEmailTaken.
func (s *UserService) Create(req model.CreateUserRequest) (*model.UserResponse, error) {
	ent := &model.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  string(req.Role),
	}
	if err := s.db.Create(ent).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrEmailTaken
		}
		return nil, err
	}
	return entityToUser(ent), nil
}

// Get returns a user by ID.
func (s *UserService) Get(userID uint) (*model.UserResponse, error) {
	var ent model.User
	if err := s.db.First(&ent, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return entityToUser(&ent), nil
}

func entityToUser(ent *model.User) *model.UserResponse {
	return &model.UserResponse{
		ID:        ent.ID,
		Email:     ent.Email,
		Name:      ent.Name,
		Role:      model.Role(ent.Role),
		CreatedAt: ent.CreatedAt,
	}
}

// isUniqueViolation reports whether err is a unique-constraint violation
// (Postgres 23505; SQLite message match for tests).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
