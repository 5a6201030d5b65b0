// Package auth is the Fiber middleware that authenticates requests with the
// identity provider's ID tokens and exposes the resulting principal.
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	coreauth "github.com/GoShelter-Admin/GoShelter-Admin/internal/auth"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// principalKey is the fiber.Locals key holding the verified principal.
const principalKey = "principal"

// New returns the authentication middleware: it verifies the bearer ID token
// and stores the principal in the request locals. Requests without a valid
// token are rejected with 401.
func New(verifier *coreauth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		principal, err := verifier.VerifyIDToken(c.UserContext(), token)
		if err != nil {
			log.Debug().Err(err).Msg("token verification failed")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		c.Locals(principalKey, principal)

		return c.Next()
	}
}

// Principal returns the verified principal of the request, or nil when the
// request did not pass the authentication middleware.
func Principal(c *fiber.Ctx) *coreauth.UserDetails {
	principal, _ := c.Locals(principalKey).(*coreauth.UserDetails)

	return principal
}

// RequireAdmin guards routes that only admins may call.
func RequireAdmin(c *fiber.Ctx) error {
	principal := Principal(c)
	if principal == nil || !principal.HasRole(models.RoleAdmin) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin role required",
		})
	}

	return c.Next()
}
