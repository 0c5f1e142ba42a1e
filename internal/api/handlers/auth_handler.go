package handlers

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/api/presenters"
	"Surplus-Reduction-Backend/pkg/jwt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	AuthHandler interface {
		IssueToken(c *fiber.Ctx) error
		LogOut(c *fiber.Ctx) error
	}

	authHandler struct {
		jwtService jwt.JWTService
		production bool
	}
)

func NewAuthHandler(jwtService jwt.JWTService, production bool) AuthHandler {
	return &authHandler{
		jwtService: jwtService,
		production: production,
	}
}

func (h *authHandler) tokenCookie(value string) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     domain.TokenCookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
	if h.production {
		cookie.Secure = true
		cookie.SameSite = fiber.CookieSameSiteNoneMode
	}
	return cookie
}

func (h *authHandler) IssueToken(c *fiber.Ctx) error {
	payload := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	token, reused, err := h.jwtService.IssueOrReuseToken(c.Cookies(domain.TokenCookieName), payload)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetToken, err)
	}
	if !reused {
		log.Debugf("issued new token")
		c.Cookie(h.tokenCookie(token))
	}

	return presenters.SuccessResponse(c, domain.TokenResponse{Token: token}, fiber.StatusOK)
}

func (h *authHandler) LogOut(c *fiber.Ctx) error {
	cookie := h.tokenCookie("")
	cookie.Expires = time.Unix(0, 0)
	c.Cookie(cookie)

	return presenters.SuccessResponse(c, domain.LogOutResponse{Success: true}, fiber.StatusOK)
}
