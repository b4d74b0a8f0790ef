package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/auth"
	"github.com/johnquangdev/minutemind/internal/adapter/presenter"
	"github.com/johnquangdev/minutemind/internal/usecase/auth"
)

const accessTokenCookie = "access_token"

// Auth handles authentication HTTP requests
type Auth struct {
	authService  auth.Service
	secureCookie bool
	logger       *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(authService auth.Service, secureCookie bool, logger *zap.Logger) *Auth {
	return &Auth{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login handles POST /auth/login
// @Summary      Operator login
// @Description  Exchanges the configured operator credentials for an access token.
// @Description  The token is also set as the access_token cookie.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      auth.LoginRequest  true  "Credentials"
// @Success      200      {object}  auth.LoginResponse
// @Failure      401      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}  "Authentication disabled"
// @Router       /auth/login [post]
func (h *Auth) Login(c echo.Context) error {
	var req authDTO.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    result.AccessToken,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return HandleSuccess(h.logger, c, presenter.ToLoginResponse(result))
}

// Logout handles POST /auth/logout
// @Summary      Operator logout
// @Description  Clears the access_token cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *Auth) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	return HandleSuccess(h.logger, c, map[string]string{"status": "logged_out"})
}
