package model

import "errors"

// Common errors used across the application
var (
	// User store errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// Authentication errors
	ErrWrongPassword = errors.New("wrong password")
)
