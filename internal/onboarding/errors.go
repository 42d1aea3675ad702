package onboarding

import (
	"errors"
	"fmt"
)

// Validation codes reported by the flows.
const (
	CodeMissingFields      = "missing_fields"
	CodePasswordMismatch   = "password_mismatch"
	CodeInvalidNationalID  = "invalid_national_id"
	CodeInvalidCredentials = "invalid_credentials"
	CodeProfileWriteFailed = "profile_write_failed"
	CodeSubmissionInFlight = "submission_in_flight"
)

// ErrSubmissionInFlight is returned when a form is submitted while a previous
// submission from the same instance has not completed.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ValidationError is a local rejection raised before any remote call.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Code
}

// ProviderError wraps a rejection from the identity provider.
type ProviderError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PartialFailureError means the account exists but its profile was not stored.
type PartialFailureError struct {
	AccountID string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("account %s created without profile: %v", e.AccountID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
