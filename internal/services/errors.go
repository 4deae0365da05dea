// Package services defines the business logic for the campaign admin:
// code classification, the winners ledger, the gift catalog, and user
// summaries. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked
// by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrCodeNotFound indicates that a single-code lookup matched none of
	// the candidate records under any spelling variant. Listing views never
	// return this: an empty page is a legitimate result, not a failure.
	ErrCodeNotFound = errors.New("code not found")

	// ErrGiftNotFound indicates that the requested gift does not exist.
	ErrGiftNotFound = errors.New("gift not found")

	// ErrWinnerNotFound indicates that the requested winner ledger row does
	// not exist.
	ErrWinnerNotFound = errors.New("winner not found")

	// ErrEmptyValue is returned when a winner ledger entry or code lookup is
	// requested with a blank value.
	ErrEmptyValue = errors.New("value is empty")

	// ErrEmptyName is returned when a gift is created or renamed with a
	// blank name.
	ErrEmptyName = errors.New("name is empty")
)
