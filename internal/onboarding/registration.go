package onboarding

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/congo-pay/onboarding/internal/logging"
	"github.com/congo-pay/onboarding/internal/notification"
)

var registrationMessages = map[string]string{
	CodeMissingFields:     msgRegisterMissing,
	CodePasswordMismatch:  msgPasswordMismatch,
	CodeInvalidNationalID: msgInvalidNationalID,
}

// RegistrationFlow creates an account and stores its profile document.
//
// The two remote writes are not atomic. When the profile write fails the
// account is left in place and the attempt is recorded in
// PhaseProfileWriteFailed for later reconciliation.
type RegistrationFlow struct {
	auth     AuthProvider
	profiles ProfileStore
	router   Router
	notifier notification.Notifier
	logger   *slog.Logger
	now      func() time.Time
	form     form

	mu   sync.Mutex
	last RegistrationAttempt
}

// NewRegistrationFlow builds a registration flow for one screen instance.
// notifier may be nil.
func NewRegistrationFlow(auth AuthProvider, profiles ProfileStore, router Router, notifier notification.Notifier, logger *slog.Logger) *RegistrationFlow {
	if logger == nil {
		logger = logging.Discard()
	}
	return &RegistrationFlow{
		auth:     auth,
		profiles: profiles,
		router:   router,
		notifier: notifier,
		logger:   logger.With(slog.String("flow", "registration")),
		now:      func() time.Time { return time.Now().UTC() },
		last:     RegistrationAttempt{Phase: PhaseNone},
	}
}

// State returns the current form state.
func (f *RegistrationFlow) State() State {
	return f.form.current()
}

// LastAttempt returns the recorded phase of the most recent attempt that
// reached the provider.
func (f *RegistrationFlow) LastAttempt() RegistrationAttempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *RegistrationFlow) record(attempt RegistrationAttempt) {
	f.mu.Lock()
	f.last = attempt
	f.mu.Unlock()
}

// Submit runs one registration attempt. Checks run in order: missing fields,
// password confirmation, national id format. Resubmitting the same input
// creates another account attempt.
func (f *RegistrationFlow) Submit(ctx context.Context, in RegistrationInput) Outcome {
	if !f.form.begin() {
		return busy()
	}

	if code := firstViolation(in); code != "" {
		f.form.set(StateRejected)
		f.logger.Debug("submission rejected", slog.String("code", code))
		return rejected(code, registrationMessages[code])
	}

	f.form.set(StateSubmitting)
	attempt := RegistrationAttempt{Email: in.Email, Phase: PhaseNone}

	account, err := f.auth.CreateAccount(ctx, in.Email, in.Password)
	if err != nil {
		attempt.Err = err
		f.record(attempt)
		f.form.set(StateFailed)
		f.logger.Warn("create account failed", slog.Any("error", err))
		return providerError(&ProviderError{Op: "create account", Message: err.Error(), Err: err})
	}

	attempt.AccountID = string(account)
	attempt.Phase = PhaseAccountCreated
	f.record(attempt)

	record := ProfileRecord{
		AccountID:  attempt.AccountID,
		Email:      in.Email,
		NationalID: in.NationalID,
		CreatedAt:  f.now(),
	}
	attempt.Phase = PhaseProfileWritePending
	f.record(attempt)

	if err := f.profiles.WriteProfile(ctx, record); err != nil {
		attempt.Phase = PhaseProfileWriteFailed
		attempt.Err = err
		f.record(attempt)
		f.form.set(StateFailed)
		f.logger.Error("profile write failed after account creation",
			slog.String("account_id", attempt.AccountID),
			slog.Any("error", err),
		)
		return partialFailure(&PartialFailureError{AccountID: attempt.AccountID, Err: err})
	}

	attempt.Phase = PhaseProfileWritten
	f.record(attempt)
	f.form.set(StateSucceeded)
	f.logger.Info("account registered", slog.String("account_id", attempt.AccountID))

	if f.notifier != nil {
		if err := f.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindAccountCreated,
			Destination: in.Email,
			Body:        msgAccountCreated,
		}); err != nil {
			f.logger.Warn("success notification failed", slog.Any("error", err))
		}
	}
	f.router.NavigateTo(ScreenHome)

	out := NavigateTo(ScreenHome)
	out.Notification = msgAccountCreated
	out.AccountID = attempt.AccountID
	return out
}

// OpenSignIn follows the link to the sign-in screen.
func (f *RegistrationFlow) OpenSignIn() Outcome {
	f.router.NavigateTo(ScreenLogin)
	return NavigateTo(ScreenLogin)
}
