package domain

import "errors"

// Validation errors, raised before any network call
var (
	ErrInvalidPhone        = errors.New("contact number must be exactly 10 digits")
	ErrInvalidOTP          = errors.New("otp does not match the expected length")
	ErrMissingSignupFields = errors.New("name and email are required")
)

// Transport and protocol errors
var (
	ErrNetwork         = errors.New("network error, please check your connection")
	ErrBadRequest      = errors.New("server rejected the request input")
	ErrUnexpectedReply = errors.New("server returned an unexpected value")
)

// Authentication errors
var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrForbidden        = errors.New("insufficient permission")
	ErrAccountLocked    = errors.New("account is locked")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPhoneNotVerified = errors.New("phone number not verified")
	ErrNoToken          = errors.New("no token received from server")
)

// Session errors
var (
	ErrNoSession         = errors.New("no active session")
	ErrInvalidTransition = errors.New("operation not valid in the current auth state")
)

// Token errors
var (
	ErrTokenMalformed = errors.New("malformed token")
)
