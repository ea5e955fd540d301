package domain

var Tables = []interface{}{
	// System
	&SiteSetting{},
	&AuditLog{},
	// Shop
	&User{},
	&Product{},
	&CartItem{},
	&WishlistItem{},
	&Order{},
	&OrderItem{},
}
