package middleware

import (
    "net/http"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/redis/go-redis/v9"
)

// RateLimit allows at most maxPerMin requests per client IP and minute for
// the routes it guards. Without Redis, or when Redis fails, it lets requests through.
func RateLimit(cache *redis.Client, scope string, maxPerMin int) fiber.Handler {
    if maxPerMin <= 0 {
        maxPerMin = 60
    }
    return func(c *fiber.Ctx) error {
        if cache == nil {
            return c.Next()
        }
        key := "rl:" + scope + ":" + c.IP()
        cnt, err := cache.Incr(c.UserContext(), key).Result()
        if err != nil {
            return c.Next()
        }
        if cnt == 1 {
            cache.Expire(c.UserContext(), key, time.Minute)
        }
        if cnt > int64(maxPerMin) {
            return fiber.NewError(http.StatusTooManyRequests, "too many requests, try again later")
        }
        return c.Next()
    }
}
