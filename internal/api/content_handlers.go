package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"gkk99-backend/internal/auth"
	"gkk99-backend/internal/database"
	"gkk99-backend/internal/models"
)

// getContentHandler handles GET /api/content (public)
func (h *Handlers) getContentHandler(c echo.Context) error {
	content, err := h.Content.GetContent()
	if err != nil {
		if errors.Is(err, database.ErrContentNotFound) {
			return respondError(c, http.StatusNotFound, "site content not found")
		}
		c.Logger().Error("get content error: ", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch content")
	}

	return respondData(c, http.StatusOK, content)
}

// updateContentHandler handles PUT /api/content
func (h *Handlers) updateContentHandler(c echo.Context) error {
	account := auth.AccountFromContext(c)

	var req models.UpdateContentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	content, err := h.Content.UpdateContent(account, req)
	if err != nil {
		if errors.Is(err, database.ErrContentNotFound) {
			return respondError(c, http.StatusNotFound, "site content not found")
		}
		c.Logger().Error("update content error: ", err)
		return respondError(c, http.StatusInternalServerError, "failed to update content")
	}

	h.Audit.Log(account.ID, account.Username, models.ActionContentUpdate, content.ID, req, c.RealIP())

	return respondData(c, http.StatusOK, content)
}
