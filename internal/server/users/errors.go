package users

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidInput          = errors.New("invalid input")
	ErrBanned                = errors.New("user is banned")
	ErrForbidden             = errors.New("forbidden")
	ErrHWIDAlreadyRegistered = errors.New("hwid already registered")
	ErrCheckoutNotFound      = errors.New("checkout session not found")
)
