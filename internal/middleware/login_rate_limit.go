package middleware

import (
    "log/slog"
    "net/http"
    "strings"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/redis/go-redis/v9"
)

const (
    signInLimitPrefix = "rl:sign_in:"
    signInLimitWindow = time.Minute
)

// SignInRateLimit blocks an email (or IP when no email is sent) after
// maxFailures rejected sign-ins. Only 401 responses count. The window slides:
// each failure pushes the expiry a minute out, and a successful sign-in clears
// the counter. Anyone who knows an address can still hold it locked by failing
// on purpose; that is the accepted cost of per-email limiting.
// Without Redis the limiter is a no-op.
func SignInRateLimit(cache *redis.Client, maxFailures int, logger *slog.Logger) fiber.Handler {
    if maxFailures <= 0 {
        maxFailures = 5
    }
    return func(c *fiber.Ctx) error {
        if cache == nil {
            return c.Next()
        }
        var req struct {
            Email string `json:"email"`
        }
        _ = c.BodyParser(&req)
        subject := strings.ToLower(strings.TrimSpace(req.Email))
        if subject == "" {
            subject = c.IP()
        }
        key := signInLimitPrefix + subject
        ctx := c.UserContext()

        failures, err := cache.Get(ctx, key).Int64()
        if err != nil && err != redis.Nil {
            logger.Warn("sign-in limit lookup failed", slog.Any("error", err))
        }
        if failures >= int64(maxFailures) {
            return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{
                "kind":    "busy",
                "code":    "rate_limited",
                "message": "Too many sign-in attempts, try again later",
            })
        }

        if err := c.Next(); err != nil {
            return err
        }

        switch c.Response().StatusCode() {
        case http.StatusUnauthorized:
            _, err := cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
                pipe.Incr(ctx, key)
                pipe.Expire(ctx, key, signInLimitWindow)
                return nil
            })
            if err != nil {
                logger.Warn("sign-in limit update failed", slog.Any("error", err))
            }
        case http.StatusOK:
            if err := cache.Del(ctx, key).Err(); err != nil {
                logger.Warn("sign-in limit reset failed", slog.Any("error", err))
            }
        }
        return nil
    }
}
