package errs

import "errors"

// Domain sentinel errors, mapped to HTTP status codes in handlers.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrNotTeacher      = errors.New("user is not a teacher")
	ErrNotClassTeacher = errors.New("user is not the teacher of this class")
	ErrNotStudent      = errors.New("user is not a student")
)
