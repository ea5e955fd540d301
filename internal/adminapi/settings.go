package adminapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.AdminGET("/settings", listSettings)
	webserver.AdminPUT("/settings", updateSetting)
	webserver.AdminGET("/audit", listAuditLog)
}

func listSettings(c echo.Context) error {
	db := GetDB(c).Model(&domain.SiteSetting{})
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		db = db.Where("category = ?", category)
	}
	var rows []domain.SiteSetting
	if err := db.Order("category ASC, sort ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", nil)
	}
	return ok(c, rows)
}

type settingPayload struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// validateSettingValue rejects values that would break pricing or uploads.
// Unknown keys pass through unchanged.
func validateSettingValue(category, name, value string) string {
	switch category + "." + name {
	case "shop.FreeShippingOver", "shop.FlatShippingFee":
		d, err := decimal.NewFromString(value)
		if err != nil || d.IsNegative() {
			return "Value must be a non-negative amount"
		}
	case "shop.TaxRate":
		d, err := decimal.NewFromString(value)
		if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
			return "Tax rate must be between 0 and 1"
		}
	case "uploads.MaxUploadMB":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 64 {
			return "Max upload size must be between 1 and 64 MB"
		}
	}
	return ""
}

func updateSetting(c echo.Context) error {
	var payload settingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting", nil)
	}
	payload.Category = strings.TrimSpace(payload.Category)
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Value = strings.TrimSpace(payload.Value)
	if payload.Category == "" || payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Category and name are required", nil)
	}
	// homepage content has its own validated endpoint
	if payload.Category == "homepage" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Use the homepage content endpoint", nil)
	}
	if msg := validateSettingValue(payload.Category, payload.Name, payload.Value); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_VALUE", msg, nil)
	}

	if err := webserver.GetApp(c).Settings().Set(payload.Category, payload.Name, payload.Value); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save setting", nil)
	}
	audit(c, "settings.update", fmt.Sprintf("%s.%s=%s", payload.Category, payload.Name, payload.Value))
	return ok(c, payload)
}

func listAuditLog(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.AuditLog{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query audit log", nil)
	}
	var rows []domain.AuditLog
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query audit log", nil)
	}
	return paged(c, rows, total, page, pageSize)
}
