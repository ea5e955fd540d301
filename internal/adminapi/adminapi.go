// Package adminapi serves the dashboard API: product CRUD, order
// management, homepage content, site settings and media upload.
// Every route is bearer-token gated and requires the admin role.
package adminapi

import (
	"github.com/velourluxe/storefront/internal/app"
	"github.com/velourluxe/storefront/internal/order"
)

var orderSvc *order.Service

// Init wires admin services and registers all dashboard routes.
// Call after webserver.Init.
func Init(application app.AppContext) {
	orderSvc = order.NewService(order.NewGormRepository(application.DB()), application.Bus())

	registerProductRoutes()
	registerOrderRoutes()
	registerContentRoutes()
	registerSettingsRoutes()
	registerUploadRoutes()
	registerUserRoutes()
}
