package onboarding

import "time"

// Screen names a destination understood by the navigation container.
type Screen string

const (
	ScreenHome     Screen = "Home"
	ScreenLogin    Screen = "Login"
	ScreenRegister Screen = "Register"
)

// Account is the opaque handle issued by the identity provider.
type Account string

// Credentials request structure for sign-in.
type Credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// RegistrationInput carries the registration form fields.
type RegistrationInput struct {
	Email           string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	NationalID      string `validate:"required,nationalid"`
}

// ProfileRecord is the supplementary document stored under the account id.
type ProfileRecord struct {
	AccountID  string
	Email      string
	NationalID string
	CreatedAt  time.Time
}

// State tracks a form instance through one submission attempt.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// inFlight reports whether a submission currently owns the form.
func (s State) inFlight() bool {
	return s == StateValidating || s == StateSubmitting
}

// RegistrationPhase records how far the two-step registration got.
type RegistrationPhase string

const (
	PhaseNone                RegistrationPhase = "none"
	PhaseAccountCreated      RegistrationPhase = "account_created"
	PhaseProfileWritePending RegistrationPhase = "profile_write_pending"
	PhaseProfileWritten      RegistrationPhase = "profile_written"
	PhaseProfileWriteFailed  RegistrationPhase = "profile_write_failed"
)

// RegistrationAttempt is the recorded intermediate state of a registration.
// An attempt in PhaseProfileWriteFailed leaves an account without a profile.
type RegistrationAttempt struct {
	AccountID string
	Email     string
	Phase     RegistrationPhase
	Err       error
}
