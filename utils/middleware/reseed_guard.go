package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/classtrack/utils/cache"
	"github.com/sahilchouksey/classtrack/utils/response"
)

// reseedCooldown is the minimum interval between destructive reseeds per IP.
const reseedCooldown = time.Minute

// ReseedGuard throttles the destructive reseed endpoint using Redis so a
// misbehaving client cannot wipe the store in a loop.
type ReseedGuard struct {
	redisCache *cache.RedisCache
}

// NewReseedGuard creates a new reseed guard backed by the given cache.
func NewReseedGuard(redisCache *cache.RedisCache) *ReseedGuard {
	return &ReseedGuard{
		redisCache: redisCache,
	}
}

// Limit returns a middleware that rejects a reseed while a previous one from
// the same IP is still inside the cooldown window.
func (g *ReseedGuard) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		key := fmt.Sprintf("reseed:cooldown:%s", ip)

		// If Redis is down, allow the request rather than blocking the user.
		locked, err := g.redisCache.Exists(c.Context(), key)
		if err != nil {
			return c.Next()
		}

		if locked {
			ttl, _ := g.redisCache.TTL(c.Context(), key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = int(reseedCooldown.Seconds())
			}

			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c,
				fmt.Sprintf("Database was reseeded recently. Try again in %d seconds", retryAfter))
		}

		if err := g.redisCache.Set(c.Context(), key, "1", reseedCooldown); err != nil {
			return c.Next()
		}

		return c.Next()
	}
}
