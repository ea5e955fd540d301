// Package shopapi serves the storefront-facing API: catalog browsing,
// authentication, cart, wishlist and checkout.
package shopapi

import (
	"github.com/velourluxe/storefront/internal/app"
	"github.com/velourluxe/storefront/internal/cart"
	"github.com/velourluxe/storefront/internal/order"
	"github.com/velourluxe/storefront/internal/payment"
)

var (
	cartSvc  *cart.Service
	orderSvc *order.Service
	payments payment.Authorizer
)

// Init wires the shop services and registers all storefront routes.
// Call after webserver.Init.
func Init(application app.AppContext) {
	db := application.DB()
	cartSvc = cart.NewService(cart.NewGormStore(db), cart.NewGormCatalog(db))
	orderSvc = order.NewService(order.NewGormRepository(db), application.Bus())
	payments = payment.NewGatewayClient(application.Config().Payment)

	registerCatalogRoutes()
	registerContentRoutes()
	registerAuthRoutes()
	registerCartRoutes()
	registerWishlistRoutes()
	registerOrderRoutes()
}
