package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
	"github.com/velourluxe/storefront/pkg/common"
)

func registerUserRoutes() {
	webserver.AdminGET("/users", listUsers)
	webserver.AdminGET("/users/:id", getUser)
	webserver.AdminPUT("/users/:id/role", updateUserRole)
	webserver.AdminPUT("/users/:id/status", updateUserStatus)
}

func listUsers(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.User{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			"%"+q+"%", "%"+q+"%", "%"+q+"%")
	}
	if level := strings.TrimSpace(c.QueryParam("level")); level != "" {
		db = db.Where("level = ?", level)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", nil)
	}
	var rows []domain.User
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", nil)
	}
	return paged(c, rows, total, page, pageSize)
}

func getUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var user domain.User
	if err := GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	return ok(c, user)
}

type rolePayload struct {
	Level string `json:"level"`
}

// updateUserRole is the only place a role can change. Registration always
// assigns the customer role.
func updateUserRole(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var payload rolePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}
	if payload.Level != domain.RoleCustomer && payload.Level != domain.RoleAdmin {
		return fail(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be customer or admin", nil)
	}

	var user domain.User
	if err := GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	// an admin cannot demote themselves and lock everyone out
	if claims := webserver.GetClaims(c); claims != nil &&
		claims.UserID == user.ID && payload.Level != domain.RoleAdmin {
		return fail(c, http.StatusConflict, "SELF_DEMOTION", "You cannot remove your own admin role", nil)
	}

	if err := GetDB(c).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"level": payload.Level, "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user", nil)
	}
	audit(c, "user.role", fmt.Sprintf("id=%d level=%s", id, payload.Level))
	user.Level = payload.Level
	return ok(c, user)
}

type userStatusPayload struct {
	Status string `json:"status"`
}

func updateUserStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var payload userStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}
	if payload.Status != common.ENABLED && payload.Status != common.DISABLED {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be enabled or disabled", nil)
	}

	var user domain.User
	if err := GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if err := GetDB(c).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": payload.Status, "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user", nil)
	}
	audit(c, "user.status", fmt.Sprintf("id=%d status=%s", id, payload.Status))
	user.Status = payload.Status
	return ok(c, user)
}
