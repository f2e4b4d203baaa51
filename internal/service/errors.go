package service

import "errors"

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrInstructorNotFound  = errors.New("instructor not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrContactNotFound     = errors.New("contact message not found")
	ErrInvalidStatus       = errors.New("invalid status")
	// ErrStatusFinal is returned when an approved or rejected application is asked
	// to move to another status.
	ErrStatusFinal = errors.New("application status is final")
)
