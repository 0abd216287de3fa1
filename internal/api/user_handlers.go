package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"gkk99-backend/internal/auth"
	"gkk99-backend/internal/content"
	"gkk99-backend/internal/database"
	"gkk99-backend/internal/models"
)

// listAccountsHandler handles GET /api/admin/users
func (h *Handlers) listAccountsHandler(c echo.Context) error {
	account := auth.AccountFromContext(c)

	accounts, err := h.Content.ListAccounts(account)
	if err != nil {
		if errors.Is(err, content.ErrForbidden) {
			return respondError(c, http.StatusForbidden, "access denied")
		}
		c.Logger().Error("list accounts error: ", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch users")
	}

	return respondData(c, http.StatusOK, accounts)
}

// updateAccountStatusHandler handles PATCH /api/admin/users/:id/status
func (h *Handlers) updateAccountStatusHandler(c echo.Context) error {
	account := auth.AccountFromContext(c)
	targetID := c.Param("id")

	var req models.UpdateAccountStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.IsActive == nil {
		return respondError(c, http.StatusBadRequest, "isActive is required")
	}

	updated, err := h.Content.SetAccountActive(account, targetID, *req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrForbidden):
			return respondError(c, http.StatusForbidden, "access denied")
		case errors.Is(err, content.ErrProtectedAccount):
			return respondError(c, http.StatusBadRequest, "cannot deactivate main admin")
		case errors.Is(err, database.ErrAccountNotFound):
			return respondError(c, http.StatusNotFound, "user not found")
		default:
			c.Logger().Error("update account status error: ", err)
			return respondError(c, http.StatusInternalServerError, "failed to update user status")
		}
	}

	action := models.ActionUserActivate
	if !updated.IsActive {
		action = models.ActionUserDisable
	}
	h.Audit.Log(account.ID, account.Username, action, updated.ID, nil, c.RealIP())

	return respondData(c, http.StatusOK, updated)
}

// createSubAdminHandler handles POST /api/admin/users
func (h *Handlers) createSubAdminHandler(c echo.Context) error {
	account := auth.AccountFromContext(c)

	var req models.CreateSubAdminRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	created, err := h.Content.CreateSubAdmin(account, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrForbidden):
			return respondError(c, http.StatusForbidden, "access denied")
		case errors.Is(err, content.ErrInvalidRequest):
			return respondError(c, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, content.ErrUsernameTaken):
			return respondError(c, http.StatusConflict, "username already exists")
		default:
			c.Logger().Error("create sub-admin error: ", err)
			return respondError(c, http.StatusInternalServerError, "failed to create sub-admin")
		}
	}

	h.Audit.Log(account.ID, account.Username, models.ActionUserCreate, created.ID, nil, c.RealIP())

	return respondData(c, http.StatusCreated, created)
}
