package identity

import "errors"

// Messages mirror the hosted identity provider the mobile client used, so the
// registration screen can show them verbatim.
var (
	ErrEmailInUse         = errors.New("The email address is already in use by another account.")
	ErrInvalidEmail       = errors.New("The email address is badly formatted.")
	ErrWeakPassword       = errors.New("Password should be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
)
