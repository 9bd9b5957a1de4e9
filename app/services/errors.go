package services

import "errors"

// Domain errors translated to HTTP status codes at the controller boundary.
var (
	ErrEmailOrPhoneRequired = errors.New("email or phone is required")
	ErrEmailTaken           = errors.New("email already registered")
	ErrPhoneTaken           = errors.New("phone already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidVendorID      = errors.New("invalid vendor id")
	ErrVendorNotFound       = errors.New("vendor not found")
)
