package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
)

type productPayload struct {
	Name       string   `json:"name"`
	Brand      string   `json:"brand"`
	Price      string   `json:"price"`
	Colors     []string `json:"colors"`
	InStock    *bool    `json:"in_stock"`
	Featured   *bool    `json:"featured"`
	NewArrival *bool    `json:"new_arrival"`
	Image      string   `json:"image"`
	Gallery    []string `json:"gallery"`
}

func (p *productPayload) validate() (decimal.Decimal, string) {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	if p.Name == "" {
		return decimal.Zero, "Name is required"
	}
	if p.Brand == "" {
		return decimal.Zero, "Brand is required"
	}
	if len(p.Colors) == 0 {
		return decimal.Zero, "At least one color is required"
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil || price.IsNegative() {
		return decimal.Zero, "Price must be a non-negative amount"
	}
	return price, ""
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.AdminGET("/products", listProducts)
	webserver.AdminGET("/products/:id", getProduct)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPUT("/products/:id", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	brand := strings.TrimSpace(c.QueryParam("brand"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"brand":      "brand",
		"price":      "price",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, okCol := allowed[sortField]
	if !okCol {
		sortCol = "id"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		db = db.Where("name ILIKE ?", "%"+q+"%")
	}
	if brand != "" {
		db = db.Where("brand = ?", brand)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).
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

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	price, msg := payload.validate()
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	now := time.Now()
	p := domain.Product{
		Name:       payload.Name,
		Brand:      payload.Brand,
		Price:      price,
		Colors:     payload.Colors,
		InStock:    payload.InStock == nil || *payload.InStock,
		Featured:   payload.Featured != nil && *payload.Featured,
		NewArrival: payload.NewArrival != nil && *payload.NewArrival,
		Image:      strings.TrimSpace(payload.Image),
		Gallery:    payload.Gallery,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}
	audit(c, "product.create", fmt.Sprintf("id=%d name=%s", p.ID, p.Name))
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	price, msg := payload.validate()
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p.Name = payload.Name
	p.Brand = payload.Brand
	p.Price = price
	p.Colors = payload.Colors
	if payload.InStock != nil {
		p.InStock = *payload.InStock
	}
	if payload.Featured != nil {
		p.Featured = *payload.Featured
	}
	if payload.NewArrival != nil {
		p.NewArrival = *payload.NewArrival
	}
	p.Image = strings.TrimSpace(payload.Image)
	p.Gallery = payload.Gallery
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}
	audit(c, "product.update", fmt.Sprintf("id=%d name=%s", p.ID, p.Name))
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}
	audit(c, "product.delete", fmt.Sprintf("id=%d", id))
	return ok(c, map[string]interface{}{"id": id})
}
