package middleware

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/models"
)

// SessionCookieName is the cookie carrying the logged-in user profile.
const SessionCookieName = "session"

const sessionTTL = 24 * time.Hour

// SetSessionCookie stores the raw provider profile JSON in the session
// cookie. The value is URL-escaped so the JSON survives cookie
// encoding rules; browsers send it back verbatim.
func SetSessionCookie(c *fiber.Ctx, rawProfile []byte) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    url.QueryEscape(string(rawProfile)),
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})
}

// SessionProfile decodes the profile stored in the session cookie.
// Returns fiber.ErrUnauthorized when the cookie is absent or damaged.
func SessionProfile(c *fiber.Ctx) (*models.UserProfile, error) {
	raw := c.Cookies(SessionCookieName)
	if raw == "" {
		return nil, fiber.ErrUnauthorized
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fiber.ErrUnauthorized
	}
	var profile models.UserProfile
	if err := json.Unmarshal([]byte(decoded), &profile); err != nil {
		return nil, fiber.ErrUnauthorized
	}
	return &profile, nil
}

// Protected rejects requests without a valid session cookie and stores
// the decoded profile in locals for downstream handlers.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := SessionProfile(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		c.Locals("profile", profile)
		return c.Next()
	}
}
