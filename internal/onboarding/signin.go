package onboarding

import (
	"context"
	"log/slog"

	"github.com/congo-pay/onboarding/internal/logging"
)

// SignInFlow validates credentials and hands them to the identity provider.
type SignInFlow struct {
	auth   AuthProvider
	router Router
	logger *slog.Logger
	form   form
}

// NewSignInFlow builds a sign-in flow for one screen instance.
func NewSignInFlow(auth AuthProvider, router Router, logger *slog.Logger) *SignInFlow {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SignInFlow{auth: auth, router: router, logger: logger.With(slog.String("flow", "sign_in"))}
}

// State returns the current form state.
func (f *SignInFlow) State() State {
	return f.form.current()
}

// Submit runs one sign-in attempt.
//
// Every provider failure maps to the same invalid_credentials outcome: wrong
// password, unknown account and transport errors are not told apart.
func (f *SignInFlow) Submit(ctx context.Context, creds Credentials) Outcome {
	if !f.form.begin() {
		return busy()
	}

	if code := firstViolation(creds); code != "" {
		f.form.set(StateRejected)
		f.logger.Debug("submission rejected", slog.String("code", code))
		return rejected(code, msgSignInMissing)
	}

	f.form.set(StateSubmitting)
	account, err := f.auth.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		f.form.set(StateFailed)
		f.logger.Warn("authenticate failed", slog.Any("error", err))
		return userError(CodeInvalidCredentials, msgInvalidCredentials, &ProviderError{Op: "authenticate", Message: err.Error(), Err: err})
	}

	f.form.set(StateSucceeded)
	f.logger.Info("signed in", slog.String("account_id", string(account)))
	f.router.NavigateTo(ScreenHome)

	out := NavigateTo(ScreenHome)
	out.AccountID = string(account)
	return out
}

// OpenRegistration follows the link to the registration screen.
func (f *SignInFlow) OpenRegistration() Outcome {
	f.router.NavigateTo(ScreenRegister)
	return NavigateTo(ScreenRegister)
}
