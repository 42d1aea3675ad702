package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	// FormIDHeader identifies the screen instance a submission comes from.
	FormIDHeader     = "X-Form-ID"
	submissionPrefix = "submission:v1:"
	inFlightMarker   = "__in_flight__"
)

// SubmissionLock admits one in-flight submission per form instance across
// replicas. The lock lives in Redis under the X-Form-ID header and is released
// when the handler returns, so a later resubmission runs again rather than
// replaying the earlier response.
func SubmissionLock(cache *redis.Client, ttl time.Duration, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		formID := c.Get(FormIDHeader)
		if cache == nil || formID == "" {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		key := submissionPrefix + c.Path() + ":" + formID
		acquired, err := cache.SetNX(ctx, key, inFlightMarker, ttl).Result()
		if err != nil {
			logger.Error("submission lock failed", slog.String("form_id", formID), slog.Any("error", err))
			return fiber.NewError(fiber.StatusInternalServerError, "submission lock failure")
		}
		if !acquired {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"kind":    "busy",
				"code":    "submission_in_flight",
				"message": "A submission is already in progress",
			})
		}

		defer func() {
			releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer releaseCancel()
			if err := cache.Del(releaseCtx, key).Err(); err != nil {
				logger.Warn("submission unlock failed", slog.String("form_id", formID), slog.Any("error", err))
			}
		}()

		return c.Next()
	}
}
