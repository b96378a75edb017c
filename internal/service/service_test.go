package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahaldeman-8thlight/video-class-app/internal/config"
	"github.com/ahaldeman-8thlight/video-class-app/internal/model"
	"github.com/ahaldeman-8thlight/video-class-app/internal/token"
)

// setupDB opens an in-memory SQLite database with the app schema.
func setupDB(t *testing.T) *gorm.DB {
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
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{
		StreamAPIKey:    "key-123",
		StreamAPISecret: "secret-123",
		JoinBaseURL:     "http://localhost:3000",
	}
	return cfg
}

func setupServices(t *testing.T) (*gorm.DB, *UserService, *ClassService) {
	t.Helper()
	db := setupDB(t)
	cfg := testConfig()
	users := NewUserService(db)
	classes := NewClassService(db, cfg, token.NewIssuer(cfg.StreamAPISecret), &JoinConfig{BaseURL: cfg.JoinBaseURL})
	return db, users, classes
}

func createUser(t *testing.T, svc *UserService, email, name string, role model.Role) *model.UserResponse {
	t.Helper()
	usr, err := svc.Create(model.CreateUserRequest{Email: email, Name: name, Role: role})
	require.NoError(t, err)
	return usr
}
