package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/middleware"
	"github.com/yenthanh/chemistry_tutor/services"
	"github.com/yenthanh/chemistry_tutor/utils"
)

// GetAuthURL hands the frontend the provider login URL to open in a
// popup window.
func GetAuthURL(c *fiber.Ctx) error {
	zalo := services.GetZaloService()
	if !zalo.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ZALO_APP_ID not configured"})
	}
	state := utils.GenerateStateToken()
	return c.JSON(fiber.Map{"url": zalo.AuthorizationURL(state)})
}

// AuthCallback is the OAuth redirect target. It exchanges the code for
// an access token, fetches the profile, sets the session cookie, and
// returns a small page that posts the profile back to the opener window.
func AuthCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).SendString("No code provided")
	}

	zalo := services.GetZaloService()
	accessToken, err := zalo.ExchangeCode(code)
	if err != nil {
		log.Printf("Auth error: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Authentication failed")
	}

	_, rawProfile, err := zalo.FetchProfile(accessToken)
	if err != nil {
		log.Printf("Auth error: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Authentication failed")
	}

	middleware.SetSessionCookie(c, rawProfile)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(`<html><body><script>
  if (window.opener) {
    window.opener.postMessage({ type: 'AUTH_SUCCESS', user: %s }, '*');
    window.close();
  } else {
    window.location = '/';
  }
</script></body></html>`, rawProfile))
}

// GetCurrentUser returns the profile stored in the session cookie.
func GetCurrentUser(c *fiber.Ctx) error {
	profile, err := middleware.SessionProfile(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	return c.JSON(profile)
}

// Logout clears the session cookie.
func Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true})
}
