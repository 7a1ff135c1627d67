package middleware

import (
    "net/http"
    "strings"

    "github.com/gofiber/fiber/v2"
)

const (
    DraftTokenHeader = "X-Draft-Token"
    draftTokenLocal  = "draft_token"
)

// DraftToken requires the resume token of a draft on every request it guards.
// The token is verified by the draft service; this only rejects requests
// without one.
func DraftToken() fiber.Handler {
    return func(c *fiber.Ctx) error {
        token := strings.TrimSpace(c.Get(DraftTokenHeader))
        if token == "" {
            return fiber.NewError(http.StatusUnauthorized, "missing draft token")
        }
        c.Locals(draftTokenLocal, token)
        return c.Next()
    }
}

// DraftTokenFrom returns the token stored by DraftToken.
func DraftTokenFrom(c *fiber.Ctx) string {
    token, _ := c.Locals(draftTokenLocal).(string)
    return token
}
