package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetApp(c).DB()
}

// audit records an admin mutation for the dashboard activity view.
func audit(c echo.Context, action, detail string) {
	actor := ""
	if claims := webserver.GetClaims(c); claims != nil {
		actor = strconv.FormatInt(claims.UserID, 10)
	}
	GetDB(c).Create(&domain.AuditLog{
		Actor:   actor,
		ActorIP: c.RealIP(),
		Action:  action,
		Detail:  detail,
	})
}
