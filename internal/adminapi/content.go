package adminapi

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
)

func registerContentRoutes() {
	webserver.AdminGET("/content/homepage", getHomepageContent)
	webserver.AdminPUT("/content/homepage", updateHomepageContent)
}

func getHomepageContent(c echo.Context) error {
	raw := webserver.GetApp(c).Settings().GetString("homepage", "content")
	if raw == "" {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Homepage content not configured", nil)
	}
	var content domain.HomepageContent
	if err := jsoniter.UnmarshalFromString(raw, &content); err != nil {
		return fail(c, http.StatusInternalServerError, "CONTENT_ERROR", "Stored homepage content is corrupt", nil)
	}
	return ok(c, content)
}

// updateHomepageContent validates the payload against the versioned schema
// before replacing the stored document. Invalid payloads never persist.
func updateHomepageContent(c echo.Context) error {
	var raw map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse content", nil)
	}
	content, err := domain.DecodeHomepageContent(raw)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CONTENT", err.Error(), nil)
	}
	data, err := jsoniter.MarshalToString(content)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CONTENT_ERROR", "Failed to encode content", nil)
	}
	if err := webserver.GetApp(c).Settings().Set("homepage", "content", data); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save content", nil)
	}
	audit(c, "content.homepage", "replaced homepage content")
	return ok(c, content)
}
