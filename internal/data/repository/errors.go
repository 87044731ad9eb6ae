package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrBookingOverlap is returned when the bookings exclusion constraint
	// rejects an insert.
	ErrBookingOverlap = errors.New("booking overlaps an existing booking")

	// ErrStatusMismatch is returned by conditional status updates when the
	// stored status no longer matches the expected one.
	ErrStatusMismatch = errors.New("booking status does not match expected status")

	ErrNotCancelled = errors.New("booking is not cancelled")

	// ErrEmailExists is returned when the users email constraint rejects an insert.
	ErrEmailExists = errors.New("email already exists")
)

// SQLSTATE codes mapped to sentinels
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)
