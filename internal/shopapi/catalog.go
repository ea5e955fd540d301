package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Product{})

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("name ILIKE ?", "%"+q+"%")
	}
	if brand := strings.TrimSpace(c.QueryParam("brand")); brand != "" {
		db = db.Where("brand = ?", brand)
	}
	switch c.QueryParam("featured") {
	case "true":
		db = db.Where("featured = ?", true)
	case "false":
		db = db.Where("featured = ?", false)
	}
	switch c.QueryParam("new") {
	case "true":
		db = db.Where("new_arrival = ?", true)
	case "false":
		db = db.Where("new_arrival = ?", false)
	}
	if c.QueryParam("in_stock") == "true" {
		db = db.Where("in_stock = ?", true)
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"brand":      "brand",
		"price":      "price",
		"created_at": "created_at",
	}
	sortCol, okCol := allowed[strings.TrimSpace(c.QueryParam("sort"))]
	if !okCol {
		sortCol = "id"
	}
	sortOrder := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + sortOrder).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}
