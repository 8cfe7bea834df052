package repository

import "github.com/pkg/errors"

var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateFingerprint = errors.New("duplicate job fingerprint")
)

const pgUniqueViolation = "23505"
