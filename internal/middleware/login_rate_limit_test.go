package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/onboarding/internal/logging"
)

func setupRateLimitApp(t *testing.T) (*fiber.App, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Post("/sign-in", SignInRateLimit(cache, 2, logging.Discard()), func(c *fiber.Ctx) error {
		var req struct {
			Password string `json:"password"`
		}
		_ = c.BodyParser(&req)
		if req.Password != "secret1" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"kind": "user_error"})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"kind": "navigate"})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, mr, cleanup
}

func signIn(t *testing.T, app *fiber.App, email, password string) (int, map[string]any) {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(fiber.MethodPost, "/sign-in", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestSignInRateLimitCountsOnlyFailures(t *testing.T) {
	app, mr, cleanup := setupRateLimitApp(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		if status, _ := signIn(t, app, "ali@example.pk", "secret1"); status != fiber.StatusOK {
			t.Fatalf("successful sign-in %d: expected 200 got %d", i, status)
		}
	}
	if mr.Exists(signInLimitPrefix + "ali@example.pk") {
		t.Fatalf("successful sign-ins should not leave a counter")
	}
}

func TestSignInRateLimitBlocksAfterFailures(t *testing.T) {
	app, mr, cleanup := setupRateLimitApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if status, _ := signIn(t, app, "ali@example.pk", "wrong"); status != fiber.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401 got %d", i, status)
		}
	}
	if ttl := mr.TTL(signInLimitPrefix + "ali@example.pk"); ttl <= 0 {
		t.Fatalf("expected counter to expire, ttl=%v", ttl)
	}

	status, body := signIn(t, app, "ALI@example.pk", "secret1")
	if status != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", status)
	}
	if body["kind"] != "busy" || body["code"] != "rate_limited" {
		t.Fatalf("expected JSON busy outcome, got %v", body)
	}

	if status, _ := signIn(t, app, "sara@example.pk", "secret1"); status != fiber.StatusOK {
		t.Fatalf("other email should not be limited, got %d", status)
	}

	mr.FastForward(signInLimitWindow)
	if status, _ := signIn(t, app, "ali@example.pk", "secret1"); status != fiber.StatusOK {
		t.Fatalf("expected limit to lapse after the window, got %d", status)
	}
}

func TestSignInRateLimitSuccessResetsFailures(t *testing.T) {
	app, mr, cleanup := setupRateLimitApp(t)
	defer cleanup()

	signIn(t, app, "ali@example.pk", "wrong")
	signIn(t, app, "ali@example.pk", "secret1")
	if mr.Exists(signInLimitPrefix + "ali@example.pk") {
		t.Fatalf("expected success to clear the failure counter")
	}
}
