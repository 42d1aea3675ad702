package screens

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"

	"github.com/congo-pay/onboarding/internal/metrics"
	"github.com/congo-pay/onboarding/internal/middleware"
	"github.com/congo-pay/onboarding/internal/notification"
	"github.com/congo-pay/onboarding/internal/onboarding"
)

const (
	flowSignIn       = "sign_in"
	flowRegistration = "registration"
)

// Deps are the collaborators shared by every form instance.
type Deps struct {
	Auth     onboarding.AuthProvider
	Profiles onboarding.ProfileStore
	Router   onboarding.Router
	Notifier notification.Notifier
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Handler exposes the sign-in and registration screens over HTTP.
//
// Form instances are kept per X-Form-ID so that each screen keeps its own
// submission state between requests. Requests without a form id get a fresh
// instance.
type Handler struct {
	deps  Deps
	forms *cache.Cache
}

// NewHandler constructs the screens handler. Idle form instances expire after formTTL.
func NewHandler(deps Deps, formTTL time.Duration) *Handler {
	return &Handler{deps: deps, forms: cache.New(formTTL, 2*formTTL)}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	NationalID      string `json:"national_id"`
}

type outcomeResponse struct {
	Kind         string `json:"kind"`
	Screen       string `json:"screen,omitempty"`
	Code         string `json:"code,omitempty"`
	Message      string `json:"message,omitempty"`
	Notification string `json:"notification,omitempty"`
	AccountID    string `json:"account_id,omitempty"`
}

// SubmitSignIn handles the sign-in form.
func (h *Handler) SubmitSignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow := h.signInForm(c.Get(middleware.FormIDHeader))
	out := flow.Submit(c.UserContext(), onboarding.Credentials{Email: req.Email, Password: req.Password})
	h.deps.Metrics.ObserveOutcome(flowSignIn, out)
	return respond(c, out, http.StatusOK)
}

// OpenRegistration follows the sign-in screen's link to registration.
func (h *Handler) OpenRegistration(c *fiber.Ctx) error {
	out := h.signInForm(c.Get(middleware.FormIDHeader)).OpenRegistration()
	return respond(c, out, http.StatusOK)
}

// SubmitRegistration handles the registration form.
func (h *Handler) SubmitRegistration(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	flow := h.registrationForm(c.Get(middleware.FormIDHeader))
	out := flow.Submit(c.UserContext(), onboarding.RegistrationInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		NationalID:      req.NationalID,
	})
	h.deps.Metrics.ObserveOutcome(flowRegistration, out)
	return respond(c, out, http.StatusCreated)
}

// OpenSignIn follows the registration screen's link to sign-in.
func (h *Handler) OpenSignIn(c *fiber.Ctx) error {
	out := h.registrationForm(c.Get(middleware.FormIDHeader)).OpenSignIn()
	return respond(c, out, http.StatusOK)
}

func (h *Handler) signInForm(formID string) *onboarding.SignInFlow {
	return formFor(h.forms, flowSignIn, formID, func() *onboarding.SignInFlow {
		return onboarding.NewSignInFlow(h.deps.Auth, h.deps.Router, h.deps.Logger)
	})
}

func (h *Handler) registrationForm(formID string) *onboarding.RegistrationFlow {
	return formFor(h.forms, flowRegistration, formID, func() *onboarding.RegistrationFlow {
		return onboarding.NewRegistrationFlow(h.deps.Auth, h.deps.Profiles, h.deps.Router, h.deps.Notifier, h.deps.Logger)
	})
}

// formFor returns the form instance stored for formID, creating it on first
// use. Every access pushes the expiry out again, so only idle forms are evicted.
func formFor[T any](forms *cache.Cache, flow, formID string, build func() T) T {
	if formID == "" {
		return build()
	}
	key := flow + ":" + formID
	if v, ok := forms.Get(key); ok {
		form := v.(T)
		forms.Set(key, form, cache.DefaultExpiration)
		return form
	}
	form := build()
	if err := forms.Add(key, form, cache.DefaultExpiration); err != nil {
		// lost the race to another request for the same form
		if v, ok := forms.Get(key); ok {
			return v.(T)
		}
	}
	return form
}

func respond(c *fiber.Ctx, out onboarding.Outcome, successStatus int) error {
	return c.Status(statusFor(out, successStatus)).JSON(outcomeResponse{
		Kind:         string(out.Kind),
		Screen:       string(out.Screen),
		Code:         out.Code,
		Message:      out.Message,
		Notification: out.Notification,
		AccountID:    out.AccountID,
	})
}

func statusFor(out onboarding.Outcome, successStatus int) int {
	switch out.Kind {
	case onboarding.KindNavigate:
		return successStatus
	case onboarding.KindValidationError:
		return http.StatusUnprocessableEntity
	case onboarding.KindUserError:
		return http.StatusUnauthorized
	case onboarding.KindProviderError:
		return http.StatusBadRequest
	case onboarding.KindPartialFailure:
		return http.StatusBadGateway
	case onboarding.KindBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
