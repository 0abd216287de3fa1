package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"gkk99-backend/internal/auth"
	"gkk99-backend/internal/models"
)

// loginHandler handles POST /api/auth/login
func (h *Handlers) loginHandler(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "username and password are required")
	}

	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	result, err := h.Auth.Login(req, ipAddress, userAgent)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return respondError(c, http.StatusUnauthorized, "invalid username or password")
		case errors.Is(err, auth.ErrAccountInactive):
			return respondError(c, http.StatusForbidden, "account is disabled")
		default:
			c.Logger().Error("login error: ", err)
			return respondError(c, http.StatusInternalServerError, "authentication failed")
		}
	}

	h.LoginLimiter.RecordSuccess(ipAddress)
	h.Audit.Log(result.Account.ID, result.Account.Username, models.ActionLogin, "", nil, ipAddress)

	return respondData(c, http.StatusOK, models.LoginResponse{
		User:  result.Account,
		Token: result.Token,
	})
}

// verifyHandler handles GET /api/auth/verify
func (h *Handlers) verifyHandler(c echo.Context) error {
	token := auth.TokenFromRequest(c)
	if token == "" {
		return respondError(c, http.StatusUnauthorized, "no token provided")
	}

	account, err := h.Auth.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountInactive):
			return respondError(c, http.StatusForbidden, "account is disabled")
		case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
			return respondError(c, http.StatusUnauthorized, "invalid or expired token")
		default:
			c.Logger().Error("verify error: ", err)
			return respondError(c, http.StatusInternalServerError, "verification failed")
		}
	}

	return respondData(c, http.StatusOK, account)
}

// logoutHandler handles POST /api/auth/logout
func (h *Handlers) logoutHandler(c echo.Context) error {
	token := auth.TokenFromRequest(c)

	if token != "" {
		if account, err := h.Auth.Verify(token); err == nil {
			h.Audit.Log(account.ID, account.Username, models.ActionLogout, "", nil, c.RealIP())
		}
	}

	if err := h.Auth.Logout(token); err != nil {
		c.Logger().Error("logout error: ", err)
	}

	return respondMessage(c, http.StatusOK, "logged out successfully")
}
