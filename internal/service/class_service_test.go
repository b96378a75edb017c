package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahaldeman-8thlight/video-class-app/internal/errs"
	"github.com/ahaldeman-8thlight/video-class-app/internal/model"
	"github.com/ahaldeman-8thlight/video-class-app/internal/token"
)

func TestClassCreate(t *testing.T) {
	db, users, classes := setupServices(t)
	teacher := createUser(t, users, "t@x.com", "Ada", model.RoleTeacher)

	cls, err := classes.Create(teacher.ID, model.CreateClassRequest{Title: "Intro", DurationMinutes: 45})
	require.NoError(t, err)
	assert.Equal(t, "Intro", cls.Title)
	assert.Equal(t, "Ada", cls.TeacherName)
	assert.False(t, cls.IsActive)

	var ent model.VideoClass
	require.NoError(t, db.First(&ent, cls.ID).Error)
	assert.Equal(t, 45, ent.DurationMinutes)
	assert.NotEmpty(t, ent.StreamCallID)
	assert.Equal(t, "http://localhost:3000/join/"+ent.StreamCallID, cls.JoinLink)
}

func TestClassCreateDefaultDuration(t *testing.T) {
	db, users, classes := setupServices(t)
	teacher := createUser(t, users, "t@x.com", "Ada", model.RoleTeacher)

	cls, err := classes.Create(teacher.ID, model.CreateClassRequest{Title: "Intro"})
	require.NoError(t, err)

	var ent model.VideoClass
	require.NoError(t, db.First(&ent, cls.ID).Error)
	assert.Equal(t, 60, ent.DurationMinutes)
}

func TestClassCreateRequiresTeacherRole(t *testing.T) {
	db, users, classes := setupServices(t)
	student := createUser(t, users, "s@x.com", "Sam", model.RoleStudent)

	_, err := classes.Create(student.ID, model.CreateClassRequest{Title: "Nope"})
	assert.ErrorIs(t, err, errs.ErrNotTeacher)

	_, err = classes.Create(999, model.CreateClassRequest{Title: "Nope"})
	assert.ErrorIs(t, err, errs.ErrNotTeacher)

	// no class row may be created on failure
	var count int64
	require.NoError(t, db.Model(&model.VideoClass{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestClassList(t *testing.T) {
	_, users, classes := setupServices(t)
	teacher := createUser(t, users, "t@x.com", "Ada", model.RoleTeacher)

	first, err := classes.Create(teacher.ID, model.CreateClassRequest{Title: "Intro"})
	require.NoError(t, err)
	second, err := classes.Create(teacher.ID, model.CreateClassRequest{Title: "Advanced"})
	require.NoError(t, err)

	list, err := classes.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, "Ada", list[0].TeacherName)
	assert.Equal(t, "Ada", list[1].TeacherName)
}

func TestClassStartEnd(t *testing.T) {
	db, users, classes := setupServices(t)
	teacher := createUser(t, users, "t@x.com", "Ada", model.RoleTeacher)
	other := createUser(t, users, "o@x.com", "Eve", model.RoleTeacher)

	cls, err := classes.Create(teacher.ID, model.CreateClassRequest{Title: "Intro"})
	require.NoError(t, err)

	// mismatched teacher leaves the flag untouched
	err = classes.Start(cls.ID, other.ID)
	assert.ErrorIs(t, err, errs.ErrNotClassTeacher)
	var ent model.VideoClass
	require.NoError(t, db.First(&ent, cls.ID).Error)
	assert.False(t, ent.IsActive)

	require.NoError(t, classes.Start(cls.ID, teacher.ID))
	require.NoError(t, db.First(&ent, cls.ID).Error)
	assert.True(t, ent.IsActive)

	require.NoError(t, classes.End(cls.ID, teacher.ID))
	require.NoError(t, db.First(&ent, cls.ID).Error)
	assert.False(t, ent.IsActive)

	// missing class is indistinguishable from a mismatch
	assert.ErrorIs(t, classes.Start(999, teacher.ID), errs.ErrNotClassTeacher)
}

func TestClassCredentials(t *testing.T) {
	_, users, classes := setupServices(t)
	teacher := createUser(t, users, "t@x.com", "Ada", model.RoleTeacher)
	student := createUser(t, users, "s@x.com", "Sam", model.RoleStudent)

	cls, err := classes.Create(teacher.ID, model.CreateClassRequest{Title: "Intro"})
	require.NoError(t, err)

	creds, err := classes.Credentials(cls.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "key-123", creds.APIKey)
	assert.NotEmpty(t, creds.CallID)

	// the token embeds the requested user id and expires 24h after issuance
	claims := &token.Claims{}
	tok, err := jwt.ParseWithClaims(creds.Token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-123"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, tok.Valid)
	assert.Equal(t, creds.UserID, claims.UserID)
	assert.Equal(t, "stream-io-api", claims.Issuer)
	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	_, err = classes.Credentials(999, student.ID)
	assert.ErrorIs(t, err, errs.ErrClassNotFound)
	_, err = classes.Credentials(cls.ID, 999)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestClassEnroll(t *testing.T) {
	db, users, classes := setupServices(t)
	teacher := createUser(t, users, "t@x.com", "Ada", model.RoleTeacher)
	student := createUser(t, users, "s@x.com", "Sam", model.RoleStudent)

	cls, err := classes.Create(teacher.ID, model.CreateClassRequest{Title: "Intro"})
	require.NoError(t, err)

	require.NoError(t, classes.Enroll(cls.ID, student.ID))
	// enrolling twice is a no-op
	require.NoError(t, classes.Enroll(cls.ID, student.ID))

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	enrollments, err := classes.Enrollments(cls.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, student.ID, enrollments[0].StudentID)
	assert.Equal(t, "Sam", enrollments[0].StudentName)
	require.NotNil(t, enrollments[0].JoinedAt)

	assert.ErrorIs(t, classes.Enroll(999, student.ID), errs.ErrClassNotFound)
	assert.ErrorIs(t, classes.Enroll(cls.ID, 999), errs.ErrUserNotFound)
	assert.ErrorIs(t, classes.Enroll(cls.ID, teacher.ID), errs.ErrNotStudent)
	_, err = classes.Enrollments(999)
	assert.ErrorIs(t, err, errs.ErrClassNotFound)
}
