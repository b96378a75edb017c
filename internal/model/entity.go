package model

import "time"

// User — a teacher or student account (GORM).
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:255;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Role      string    `gorm:"size:20;not null"` // teacher, student
	CreatedAt time.Time `gorm:"autoCreateTime"`

	ClassesTaught []VideoClass `gorm:"foreignKey:TeacherID"`
	Enrollments   []Enrollment `gorm:"foreignKey:StudentID"`
}

func (User) TableName() string { return "users" }

// VideoClass — a scheduled video class backed by a provider call (GORM).
type VideoClass struct {
	ID              uint       `gorm:"primaryKey"`
	Title           string     `gorm:"size:255;not null"`
	Description     *string    `gorm:"type:text"`
	TeacherID       uint       `gorm:"not null;index"`
	StreamCallID    string     `gorm:"size:64;not null;uniqueIndex"`
	ScheduledTime   *time.Time `gorm:"column:scheduled_time"`
	DurationMinutes int        `gorm:"not null;default:60"`
	IsActive        bool       `gorm:"not null;default:false"`
	JoinLink        string     `gorm:"size:512;not null"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`

	Enrollments []Enrollment `gorm:"foreignKey:ClassID"`
}

func (VideoClass) TableName() string { return "video_classes" }

// Enrollment — a student enrolled in a class (GORM).
type Enrollment struct {
	ID        uint       `gorm:"primaryKey"`
	StudentID uint       `gorm:"not null;index"`
	ClassID   uint       `gorm:"not null;index"`
	JoinedAt  *time.Time `gorm:"column:joined_at"`
}

func (Enrollment) TableName() string { return "enrollments" }
