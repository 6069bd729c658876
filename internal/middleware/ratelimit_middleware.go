package middleware

import (
	"bookbazaar/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimit rejects requests from clients that exceeded their quota of the
// limiter's current window. Rejected requests never reach the handler, so no
// upstream work is attempted for them.
func RateLimit(limiter *ratelimit.FixedWindow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		}
		return c.Next()
	}
}
