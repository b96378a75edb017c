package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahaldeman-8thlight/video-class-app/internal/config"
	"github.com/ahaldeman-8thlight/video-class-app/internal/errs"
	"github.com/ahaldeman-8thlight/video-class-app/internal/model"
	"github.com/ahaldeman-8thlight/video-class-app/internal/token"
)

const defaultDurationMinutes = 60

// ClassServicer is the class API surface for handlers.
type ClassServicer interface {
	Create(teacherID uint, req model.CreateClassRequest) (*model.Class, error)
	List() ([]model.Class, error)
	Credentials(classID, userID uint) (*model.StreamCredentials, error)
	Start(classID, teacherID uint) error
	End(classID, teacherID uint) error
	Enroll(classID, studentID uint) error
	Enrollments(classID uint) ([]model.EnrollmentInfo, error)
}

// ClassService manages video class lifecycle.
type ClassService struct {
	db     *gorm.DB
	cfg    *config.Config
	issuer *token.Issuer
	join   *JoinConfig
}

// NewClassService creates a class service.
func NewClassService(db *gorm.DB, cfg *config.Config, issuer *token.Issuer, join *JoinConfig) *ClassService {
	return &ClassService{db: db, cfg: cfg, issuer: issuer, join: join}
}

// Create creates a class for the given teacher with a fresh provider call ID.
// The caller must resolve to a user with the teacher role.
func (s *ClassService) Create(teacherID uint, req model.CreateClassRequest) (*model.Class, error) {
	var teacher model.User
	if err := s.db.First(&teacher, teacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotTeacher
		}
		return nil, err
	}
	if teacher.Role != string(model.RoleTeacher) {
		return nil, errs.ErrNotTeacher
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	callID := uuid.New().String()
	ent := &model.VideoClass{
		Title:           req.Title,
		Description:     req.Description,
		TeacherID:       teacherID,
		StreamCallID:    callID,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: duration,
		JoinLink:        s.join.JoinURL(callID),
	}
	if err := s.db.Create(ent).Error; err != nil {
		return nil, err
	}
	return entityToClass(ent, teacher.Name), nil
}

// classRow is a video_classes row joined with the teacher's name.
type classRow struct {
	model.VideoClass
	TeacherName string
}

// List returns all classes with their teacher names, in storage order.
func (s *ClassService) List() ([]model.Class, error) {
	var rows []classRow
	err := s.db.Table("video_classes").
		Select("video_classes.*, users.name AS teacher_name").
		Joins("JOIN users ON users.id = video_classes.teacher_id").
		Order("video_classes.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.Class, 0, len(rows))
	for _, r := range rows {
		out = append(out, *entityToClass(&r.VideoClass, r.TeacherName))
	}
	return out, nil
}

// Credentials mints a provider token for the user to join the class call.
// Both the class and the user must exist.
func (s *ClassService) Credentials(classID, userID uint) (*model.StreamCredentials, error) {
	var ent model.VideoClass
	if err := s.db.First(&ent, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrClassNotFound
		}
		return nil, err
	}
	var usr model.User
	if err := s.db.First(&usr, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}

	uid := strconv.FormatUint(uint64(userID), 10)
	signed, err := s.issuer.Issue(uid)
	if err != nil {
		return nil, err
	}
	return &model.StreamCredentials{
		Token:  signed,
		CallID: ent.StreamCallID,
		UserID: uid,
		APIKey: s.cfg.StreamAPIKey,
	}, nil
}

// Start marks the class active. Only its teacher may start it.
func (s *ClassService) Start(classID, teacherID uint) error {
	return s.setActive(classID, teacherID, true)
}

// End marks the class inactive. Only its teacher may end it.
func (s *ClassService) End(classID, teacherID uint) error {
	return s.setActive(classID, teacherID, false)
}

func (s *ClassService) setActive(classID, teacherID uint, active bool) error {
	var ent model.VideoClass
	if err := s.db.First(&ent, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotClassTeacher
		}
		return err
	}
	if ent.TeacherID != teacherID {
		return errs.ErrNotClassTeacher
	}
	return s.db.Model(&ent).Update("is_active", active).Error
}

// Enroll adds a student to the class. Re-enrolling is a no-op.
func (s *ClassService) Enroll(classID, studentID uint) error {
	var ent model.VideoClass
	if err := s.db.First(&ent, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrClassNotFound
		}
		return err
	}
	var student model.User
	if err := s.db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrUserNotFound
		}
		return err
	}
	if student.Role != string(model.RoleStudent) {
		return errs.ErrNotStudent
	}

	var count int64
	if err := s.db.Model(&model.Enrollment{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now()
	return s.db.Create(&model.Enrollment{
		StudentID: studentID,
		ClassID:   classID,
		JoinedAt:  &now,
	}).Error
}

// enrollmentRow is an enrollments row joined with the student's name.
type enrollmentRow struct {
	model.Enrollment
	StudentName string
}

// Enrollments returns the students enrolled in a class.
func (s *ClassService) Enrollments(classID uint) ([]model.EnrollmentInfo, error) {
	var ent model.VideoClass
	if err := s.db.First(&ent, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrClassNotFound
		}
		return nil, err
	}
	var rows []enrollmentRow
	err := s.db.Table("enrollments").
		Select("enrollments.*, users.name AS student_name").
		Joins("JOIN users ON users.id = enrollments.student_id").
		Where("enrollments.class_id = ?", classID).
		Order("enrollments.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.EnrollmentInfo, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.EnrollmentInfo{
			StudentID:   r.StudentID,
			StudentName: r.StudentName,
			JoinedAt:    r.JoinedAt,
		})
	}
	return out, nil
}

func entityToClass(ent *model.VideoClass, teacherName string) *model.Class {
	return &model.Class{
		ID:            ent.ID,
		Title:         ent.Title,
		Description:   ent.Description,
		TeacherName:   teacherName,
		JoinLink:      ent.JoinLink,
		IsActive:      ent.IsActive,
		ScheduledTime: ent.ScheduledTime,
	}
}
