package service

import "errors"

// Sentinel errors shared across services. Handlers translate these into
// HTTP status codes; anything else surfaces as a generic internal error.
var (
	// ErrNotFound covers both a missing record and an ownership mismatch.
	// Callers cannot distinguish "not yours" from "doesn't exist".
	ErrNotFound = errors.New("resource not found")
	// ErrConflict indicates a duplicate unique field, e.g. email or
	// department code.
	ErrConflict = errors.New("duplicate value")
	// ErrInvalidCredentials indicates a failed sign-in attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidResetToken indicates an unknown, used or expired reset token.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrRejectReasonRequired indicates a reject decision without a reason.
	ErrRejectReasonRequired = errors.New("a rejection reason is required")
	// ErrInvalidInput covers malformed fields the struct validator cannot
	// express, such as unparsable dates or unknown categories.
	ErrInvalidInput = errors.New("invalid input")
)
