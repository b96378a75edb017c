package model

import "time"

// CreateClassRequest is the request body for POST /api/classes/.
type CreateClassRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     *string    `json:"description"`
	ScheduledTime   *time.Time `json:"scheduled_time"`
	DurationMinutes int        `json:"duration_minutes"`
}

// Class is the API view of a video class (not GORM entity).
type Class struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	TeacherName   string     `json:"teacher_name"`
	JoinLink      string     `json:"join_link"`
	IsActive      bool       `json:"is_active"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// StreamCredentials is the response for GET /api/classes/:id/token — everything
// a participant needs to join the provider call.
type StreamCredentials struct {
	Token  string `json:"token"`
	CallID string `json:"call_id"`
	UserID string `json:"user_id"`
	APIKey string `json:"api_key"`
}

// EnrollmentInfo is a student enrolled in a class — API response DTO.
type EnrollmentInfo struct {
	StudentID   uint       `json:"student_id"`
	StudentName string     `json:"student_name"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
}

// ClassEnrollmentsResponse is the response for GET /api/classes/:id/enrollments.
type ClassEnrollmentsResponse struct {
	ClassID     uint             `json:"class_id"`
	Enrollments []EnrollmentInfo `json:"enrollments"`
}
