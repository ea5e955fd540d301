package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/velourluxe/storefront/internal/cart"
	"github.com/velourluxe/storefront/internal/webserver"
)

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/items", addCartItem)
	webserver.ApiPUT("/cart/items", setCartItemQuantity)
	webserver.ApiDELETE("/cart/items", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)
}

func getCart(c echo.Context) error {
	view, err := cartSvc.View(c.Request().Context(), currentUserID(c), webserver.GetApp(c).PricingConfig())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load cart", nil)
	}
	return ok(c, view)
}

type cartLinePayload struct {
	ProductID int64  `json:"product_id,string"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func addCartItem(c echo.Context) error {
	var payload cartLinePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart line", nil)
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	err := cartSvc.AddItem(c.Request().Context(), currentUserID(c), payload.ProductID, payload.Color, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return getCart(c)
}

func setCartItemQuantity(c echo.Context) error {
	var payload cartLinePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart line", nil)
	}
	err := cartSvc.SetQuantity(c.Request().Context(), currentUserID(c), payload.ProductID, payload.Color, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return getCart(c)
}

func removeCartItem(c echo.Context) error {
	var payload cartLinePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart line", nil)
	}
	err := cartSvc.RemoveLine(c.Request().Context(), currentUserID(c), payload.ProductID, payload.Color)
	if err != nil {
		return cartError(c, err)
	}
	return getCart(c)
}

func clearCart(c echo.Context) error {
	if err := cartSvc.Clear(c.Request().Context(), currentUserID(c)); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to clear cart", nil)
	}
	return getCart(c)
}

func cartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case errors.Is(err, cart.ErrColorUnavailable):
		return fail(c, http.StatusBadRequest, "COLOR_UNAVAILABLE", "Color not available for this product", nil)
	case errors.Is(err, cart.ErrOutOfStock):
		return fail(c, http.StatusConflict, "OUT_OF_STOCK", "Product is out of stock", nil)
	case errors.Is(err, cart.ErrLineNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Cart line not found", nil)
	case errors.Is(err, cart.ErrBadQuantity):
		return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be positive", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Cart operation failed", nil)
	}
}
