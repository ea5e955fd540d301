package shopapi

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
)

func registerContentRoutes() {
	webserver.PubGET("/content/homepage", getHomepageContent)
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
