package services

import "errors"

var (
	// ErrUserNotFound is returned by LookupUser for ids outside the directory
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingID is returned when a get operation receives an empty id
	ErrMissingID = errors.New("id is required")

	// ErrMissingCity is returned when a weather query names no city
	ErrMissingCity = errors.New("city is required")
)
