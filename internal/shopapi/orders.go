package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/velourluxe/storefront/internal/order"
	"github.com/velourluxe/storefront/internal/payment"
	"github.com/velourluxe/storefront/internal/webserver"
)

func registerOrderRoutes() {
	webserver.ApiPOST("/checkout", checkout)
	webserver.ApiGET("/orders", listMyOrders)
	webserver.ApiGET("/orders/:id", getMyOrder)
}

type checkoutPayload struct {
	order.CustomerInfo
	CardToken string `json:"card_token"`
}

func checkout(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout form", nil)
	}
	// validate before any side effect: an incomplete form must never
	// place a hold on the card
	if verr := payload.CustomerInfo.Validate(); verr != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Checkout form is incomplete", verr.Fields)
	}

	ctx := c.Request().Context()
	userID := currentUserID(c)

	view, err := cartSvc.View(ctx, userID, webserver.GetApp(c).PricingConfig())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load cart", nil)
	}
	if len(view.Lines) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
	}

	// the same ref goes to the gateway and onto the order row so the
	// authorization can be reconciled later
	ref := orderSvc.NewRef()
	currency := webserver.GetApp(c).Settings().GetString("shop", "Currency")
	if err := payments.Authorize(ctx, payment.AuthorizeRequest{
		OrderRef:  ref,
		Amount:    view.Total,
		Currency:  currency,
		CardToken: payload.CardToken,
	}); err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			return fail(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", "Payment was declined", nil)
		}
		return fail(c, http.StatusServiceUnavailable, "PAYMENT_UNAVAILABLE", "Payment gateway unavailable, please retry", nil)
	}

	ord, err := orderSvc.Submit(ctx, userID, payload.CustomerInfo, view, ref)
	if err != nil {
		var verr *order.ValidationError
		switch {
		case errors.As(err, &verr):
			return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Checkout form is incomplete", verr.Fields)
		case errors.Is(err, order.ErrEmptyCart):
			return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
		default:
			// retryable: the card was authorized but the order did not persist
			return fail(c, http.StatusServiceUnavailable, "ORDER_RETRY", "Order could not be saved, please retry", nil)
		}
	}

	if err := cartSvc.Clear(ctx, userID); err != nil {
		zap.L().Warn("failed to clear cart after checkout",
			zap.String("ref", ord.Ref), zap.Error(err))
	}
	return ok(c, ord)
}

func listMyOrders(c echo.Context) error {
	orders, err := orderSvc.ListForUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}
	return ok(c, orders)
}

func getMyOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	ord, err := orderSvc.GetForUser(c.Request().Context(), id, currentUserID(c))
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	return ok(c, ord)
}
