package repository

import "errors"

var (
	// ErrNotFound replaces gorm.ErrRecordNotFound at the repository boundary.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a unique constraint,
	// most importantly idx_no_double_booking on appointments.
	ErrDuplicate = errors.New("duplicate key")
)
