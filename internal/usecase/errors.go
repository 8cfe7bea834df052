package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrJobNotFound         = errors.New("Job not found")
	ErrJobAlreadyExists    = errors.New("Job already exists")
	ErrCourseNotFound      = errors.New("Course not found")
	ErrCourseAlreadyExists = errors.New("Course already exists")
)

// ValidationError carries the offending fields of an ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid input"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalidField(field, reason string) error {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
