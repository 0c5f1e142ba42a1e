package middleware

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/api/presenters"
	"Surplus-Reduction-Backend/internal/utils"
	"Surplus-Reduction-Backend/pkg/jwt"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct {
		allowOrigins []string
	}
)

func NewMiddleware(allowOrigins []string) Middleware {
	if len(allowOrigins) == 0 {
		allowOrigins = utils.DefaultCORSOrigins
	}
	return &middleware{allowOrigins: allowOrigins}
}

// CORSMiddleware allows only the configured origins, with credentials so
// the token cookie travels cross-site.
func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(m.allowOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
	})
}

// AuthMiddleware verifies the token cookie and stores the caller identity in
// the request locals.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(domain.TokenCookieName)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorizedNoToken, domain.ErrTokenNotFound)
		}

		identity, err := jwtService.ValidateToken(token)
		if err != nil {
			if !errors.Is(err, domain.ErrTokenExpired) {
				err = domain.ErrTokenInvalid
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorizedInvalid, err)
		}

		c.Locals(domain.LocalsIdentity, identity)
		return c.Next()
	}
}

// IdentityFromContext returns the identity stored by AuthMiddleware, if any.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(domain.LocalsIdentity).(domain.Identity)
	return identity, ok
}
