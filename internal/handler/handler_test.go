package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahaldeman-8thlight/video-class-app/internal/config"
	"github.com/ahaldeman-8thlight/video-class-app/internal/handler"
	"github.com/ahaldeman-8thlight/video-class-app/internal/model"
	"github.com/ahaldeman-8thlight/video-class-app/internal/router"
	"github.com/ahaldeman-8thlight/video-class-app/internal/service"
	"github.com/ahaldeman-8thlight/video-class-app/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	db  *gorm.DB
	srv http.Handler
}

// setup builds the full router against an in-memory SQLite database.
func setup(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// one connection only: each :memory: connection is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.VideoClass{}, &model.Enrollment{}))

	cfg := &config.Config{
		StreamAPIKey:    "key-123",
		StreamAPISecret: "secret-123",
		JoinBaseURL:     "http://localhost:3000",
		FrontendOrigin:  "http://localhost:3000",
	}
	issuer := token.NewIssuer(cfg.StreamAPISecret)
	join := &service.JoinConfig{BaseURL: cfg.JoinBaseURL}
	users := service.NewUserService(db)
	classes := service.NewClassService(db, cfg, issuer, join)

	srv := router.New(
		handler.NewUserHandler(users),
		handler.NewClassHandler(classes),
		handler.NewHealthHandler(),
		cfg.FrontendOrigin,
		zap.NewNop(),
	)
	return &env{db: db, srv: srv}
}

// do performs a JSON request against the router and returns the recorder.
func (e *env) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the response body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// createUser POSTs a user and fails the test on a non-201 response.
func (e *env) createUser(t *testing.T, email, name string, role model.Role) model.UserResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/users/", gin.H{"email": email, "name": name, "role": role})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var usr model.UserResponse
	decode(t, rec, &usr)
	return usr
}

// createClass POSTs a class for the teacher and fails the test on a non-201 response.
func (e *env) createClass(t *testing.T, teacherID uint, body gin.H) model.Class {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/classes/?teacher_id="+itoa(teacherID), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var cls model.Class
	decode(t, rec, &cls)
	return cls
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
