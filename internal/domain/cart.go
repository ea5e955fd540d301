package domain

import "time"

// CartItem is one (product, color) line of a user's server-side cart.
// Identity is (user_id, product_id, color); adding the same identity
// increments quantity instead of creating a new row.
type CartItem struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index:idx_cart_identity,unique" json:"user_id,string"`
	ProductID int64     `gorm:"index:idx_cart_identity,unique" json:"product_id,string"`
	Color     string    `gorm:"size:64;index:idx_cart_identity,unique" json:"color"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_items"
}
