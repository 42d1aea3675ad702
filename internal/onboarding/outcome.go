package onboarding

// Kind tags an Outcome.
type Kind string

const (
	KindNavigate        Kind = "navigate"
	KindValidationError Kind = "validation_error"
	KindUserError       Kind = "user_error"
	KindProviderError   Kind = "provider_error"
	KindPartialFailure  Kind = "partial_failure"
	KindBusy            Kind = "busy"
)

// User-facing messages shown by the screens.
const (
	msgSignInMissing      = "Please enter both email and password"
	msgInvalidCredentials = "Password or Email Incorrect"
	msgRegisterMissing    = "Please fill in all fields"
	msgPasswordMismatch   = "Passwords do not match"
	msgInvalidNationalID  = "Please enter a valid 13-digit CNIC number"
	msgAccountCreated     = "Account created successfully"
	msgProfileNotSaved    = "Your account was created but your profile could not be saved. Please contact support."
	msgBusy               = "A submission is already in progress"
)

// Outcome is the tagged result of a submit.
type Outcome struct {
	Kind         Kind
	Screen       Screen
	Code         string
	Message      string
	Notification string
	AccountID    string
	Err          error
}

// OK reports whether the outcome is a navigation.
func (o Outcome) OK() bool {
	return o.Kind == KindNavigate
}

// NavigateTo builds a navigation outcome.
func NavigateTo(screen Screen) Outcome {
	return Outcome{Kind: KindNavigate, Screen: screen}
}

func rejected(code, message string) Outcome {
	return Outcome{Kind: KindValidationError, Code: code, Message: message, Err: &ValidationError{Code: code}}
}

func userError(code, message string, err error) Outcome {
	return Outcome{Kind: KindUserError, Code: code, Message: message, Err: err}
}

func providerError(err *ProviderError) Outcome {
	return Outcome{Kind: KindProviderError, Message: err.Message, Err: err}
}

func partialFailure(err *PartialFailureError) Outcome {
	return Outcome{
		Kind:      KindPartialFailure,
		Code:      CodeProfileWriteFailed,
		Message:   msgProfileNotSaved,
		AccountID: err.AccountID,
		Err:       err,
	}
}

func busy() Outcome {
	return Outcome{Kind: KindBusy, Code: CodeSubmissionInFlight, Message: msgBusy, Err: ErrSubmissionInFlight}
}
