package screens

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/congo-pay/onboarding/internal/logging"
	"github.com/congo-pay/onboarding/internal/middleware"
	"github.com/congo-pay/onboarding/internal/onboarding"
)

type stubAuth struct {
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (a *stubAuth) Authenticate(_ context.Context, _, _ string) (onboarding.Account, error) {
	if a.entered != nil {
		a.entered <- struct{}{}
	}
	if a.block != nil {
		<-a.block
	}
	return "acct-1", a.err
}

func (a *stubAuth) CreateAccount(_ context.Context, _, _ string) (onboarding.Account, error) {
	if a.err != nil {
		return "", a.err
	}
	return "acct-1", nil
}

type stubProfiles struct{ err error }

func (p stubProfiles) WriteProfile(context.Context, onboarding.ProfileRecord) error { return p.err }

func newTestApp(auth onboarding.AuthProvider, profiles onboarding.ProfileStore) *fiber.App {
	h := NewHandler(Deps{
		Auth:     auth,
		Profiles: profiles,
		Router:   onboarding.RouterFunc(func(onboarding.Screen) {}),
		Logger:   logging.Discard(),
	}, time.Minute)
	app := fiber.New()
	app.Post("/login/submit", h.SubmitSignIn)
	app.Post("/login/link", h.OpenRegistration)
	app.Post("/register/submit", h.SubmitRegistration)
	app.Post("/register/link", h.OpenSignIn)
	return app
}

func post(t *testing.T, app *fiber.App, path, body, formID string) (int, outcomeResponse) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if formID != "" {
		req.Header.Set(middleware.FormIDHeader, formID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out outcomeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

const registration = `{"email":"ali@example.pk","password":"secret1","confirm_password":"secret1","national_id":"3520212345671"}`

func TestSubmitSignInStatuses(t *testing.T) {
	app := newTestApp(&stubAuth{}, stubProfiles{})
	status, out := post(t, app, "/login/submit", `{"email":"ali@example.pk","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "navigate", out.Kind)
	assert.Equal(t, "Home", out.Screen)

	status, out = post(t, app, "/login/submit", `{"email":"ali@example.pk"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, onboarding.CodeMissingFields, out.Code)

	app = newTestApp(&stubAuth{err: errors.New("boom")}, stubProfiles{})
	status, out = post(t, app, "/login/submit", `{"email":"ali@example.pk","password":"secret1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Password or Email Incorrect", out.Message)
}

func TestSubmitRegistrationStatuses(t *testing.T) {
	app := newTestApp(&stubAuth{}, stubProfiles{})
	status, out := post(t, app, "/register/submit", registration, "")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Account created successfully", out.Notification)
	assert.Equal(t, "acct-1", out.AccountID)

	app = newTestApp(&stubAuth{err: errors.New("The email address is badly formatted.")}, stubProfiles{})
	status, out = post(t, app, "/register/submit", registration, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "provider_error", out.Kind)
	assert.Equal(t, "The email address is badly formatted.", out.Message)

	app = newTestApp(&stubAuth{}, stubProfiles{err: errors.New("store down")})
	status, out = post(t, app, "/register/submit", registration, "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "partial_failure", out.Kind)
	assert.Equal(t, "acct-1", out.AccountID)
	assert.Empty(t, out.Notification)
}

func TestLinks(t *testing.T) {
	app := newTestApp(&stubAuth{}, stubProfiles{})

	status, out := post(t, app, "/login/link", `{}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Register", out.Screen)

	_, out = post(t, app, "/register/link", `{}`, "")
	assert.Equal(t, "Login", out.Screen)
}

func TestSameFormInstanceIsGuarded(t *testing.T) {
	auth := &stubAuth{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	app := newTestApp(auth, stubProfiles{})
	body := `{"email":"ali@example.pk","password":"secret1"}`

	done := make(chan int, 1)
	go func() {
		status, _ := post(t, app, "/login/submit", body, "form-1")
		done <- status
	}()
	<-auth.entered

	status, out := post(t, app, "/login/submit", body, "form-1")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "busy", out.Kind)

	close(auth.block)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestBadJSON(t *testing.T) {
	app := newTestApp(&stubAuth{}, stubProfiles{})
	req := httptest.NewRequest(fiber.MethodPost, "/login/submit", strings.NewReader("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActiveFormOutlivesTTL(t *testing.T) {
	h := NewHandler(Deps{Auth: &stubAuth{}, Logger: logging.Discard()}, 200*time.Millisecond)

	first := h.signInForm("form-1")
	for i := 0; i < 3; i++ {
		time.Sleep(120 * time.Millisecond)
		assert.Same(t, first, h.signInForm("form-1"), "access %d", i)
	}

	time.Sleep(300 * time.Millisecond)
	assert.NotSame(t, first, h.signInForm("form-1"))
}
