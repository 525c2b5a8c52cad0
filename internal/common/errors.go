// Package common defines shared sentinel errors and small helpers used across
// the gophnotes client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedState marks a persisted collection that could not be decoded.
	ErrMalformedState = errors.New("malformed persisted state")

	// Note/folder errors.
	ErrFolderNotEmpty = errors.New("folder is not empty")
	ErrEmptyDraft     = errors.New("note has neither title nor content")
	ErrValidation     = errors.New("validation error")

	// Encryption errors.
	ErrWrongPassphrase = errors.New("wrong passphrase")

	// Session errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
