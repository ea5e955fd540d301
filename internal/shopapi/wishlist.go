package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
)

func registerWishlistRoutes() {
	webserver.ApiGET("/wishlist", listWishlist)
	webserver.ApiPOST("/wishlist", addWishlistItem)
	webserver.ApiDELETE("/wishlist/:productId", removeWishlistItem)
}

func listWishlist(c echo.Context) error {
	var items []domain.WishlistItem
	if err := GetDB(c).
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load wishlist", nil)
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	var products []domain.Product
	if len(ids) > 0 {
		GetDB(c).Where("id IN ?", ids).Find(&products)
	}
	return ok(c, products)
}

type wishlistPayload struct {
	ProductID int64 `json:"product_id,string"`
}

func addWishlistItem(c echo.Context) error {
	var payload wishlistPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}

	var product domain.Product
	if err := GetDB(c).First(&product, payload.ProductID).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	// idempotent: re-adding an existing entry is not an error
	var existing domain.WishlistItem
	err := GetDB(c).
		Where("user_id = ? AND product_id = ?", currentUserID(c), payload.ProductID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := GetDB(c).Create(&domain.WishlistItem{
			UserID:    currentUserID(c),
			ProductID: payload.ProductID,
		}).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update wishlist", nil)
		}
	}
	return ok(c, map[string]interface{}{"product_id": payload.ProductID, "wished": true})
}

func removeWishlistItem(c echo.Context) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).
		Where("user_id = ? AND product_id = ?", currentUserID(c), productID).
		Delete(&domain.WishlistItem{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update wishlist", nil)
	}
	return ok(c, map[string]interface{}{"product_id": productID, "wished": false})
}
