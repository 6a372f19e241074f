package services

import (
	"errors"
)

// User-facing messages.
const (
	MsgGenericError        = "An error occurred"
	MsgPasswordsMismatch   = "Passwords do not match"
	MsgPasswordTooShort    = "Password must be at least 8 characters long"
	MsgVerificationFailed  = "HWID verification failed"
	MsgHWIDMismatch        = "HWID mismatch. Please contact support."
	MsgVerificationError   = "An error occurred while verifying HWID"
	MsgVerificationSuccess = "HWID Verified Successfully"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotVerified      = errors.New("device not verified")
)

// ValidationError is a local pre-flight rejection; no request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError is a rejected login or registration.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// FingerprintFetchError means the bound fingerprint could not be retrieved.
type FingerprintFetchError struct {
	Message string
	Err     error
}

func (e *FingerprintFetchError) Error() string { return e.Message }
func (e *FingerprintFetchError) Unwrap() error { return e.Err }

// FingerprintMismatchError means the account is bound to another device. It
// cannot be resolved from the client.
type FingerprintMismatchError struct {
	Message string
	Server  string
	Local   string
}

func (e *FingerprintMismatchError) Error() string { return e.Message }

// UnknownError is an unexpected fault inside the verification sequence.
type UnknownError struct {
	Message string
	Err     error
}

func (e *UnknownError) Error() string { return e.Message }
func (e *UnknownError) Unwrap() error { return e.Err }

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		validation *ValidationError
		auth       *AuthError
		fetch      *FingerprintFetchError
		mismatch   *FingerprintMismatchError
		unknown    *UnknownError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &auth):
		return auth.Message
	case errors.As(err, &fetch):
		return fetch.Message
	case errors.As(err, &mismatch):
		return mismatch.Message
	case errors.As(err, &unknown):
		return unknown.Message
	default:
		return err.Error()
	}
}
