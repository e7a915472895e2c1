package util

import "errors"

var (
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrNotEnrolled         = errors.New("no enrollment found for this course")
	ErrMaxAttemptsExceeded = errors.New("maximum attempts exceeded")
	ErrCourseNotCompleted  = errors.New("course not completed")
	ErrCertificateIssued   = errors.New("certificate already issued")
	ErrNotOwner            = errors.New("not authorized to access this resource")
	ErrInvalidModuleIndex  = errors.New("module index out of range")
	ErrSessionClosed       = errors.New("session already ended")
)
