package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gkk99-backend/internal/models"
)

// healthCheck handles GET /api/health
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// analyticsHandler handles GET /api/admin/analytics.
// Figures are static placeholders; no analytics pipeline exists yet.
func (h *Handlers) analyticsHandler(c echo.Context) error {
	return respondData(c, http.StatusOK, map[string]interface{}{
		"totalUsers":     1250,
		"activeUsers":    890,
		"totalSessions":  3420,
		"conversionRate": 12.5,
		"revenue":        45000,
		"topPages": []map[string]interface{}{
			{"page": "/", "views": 2100},
			{"page": "/features", "views": 890},
			{"page": "/about", "views": 430},
		},
	})
}

// listAuditLogsHandler handles GET /api/admin/audit
func (h *Handlers) listAuditLogsHandler(c echo.Context) error {
	filter := models.AuditFilter{
		Action:    c.QueryParam("action"),
		AccountID: c.QueryParam("accountId"),
		Limit:     50,
	}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 500 {
			return respondError(c, http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = n
	}
	if offset := c.QueryParam("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return respondError(c, http.StatusBadRequest, "invalid offset")
		}
		filter.Offset = n
	}

	logs, total, err := h.Audit.List(filter)
	if err != nil {
		c.Logger().Error("list audit logs error: ", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch audit logs")
	}

	return respondData(c, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
	})
}
