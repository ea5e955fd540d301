package domain

import "time"

// WishlistItem is set membership only: no quantity, no variant.
type WishlistItem struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index:idx_wishlist_identity,unique" json:"user_id,string"`
	ProductID int64     `gorm:"index:idx_wishlist_identity,unique" json:"product_id,string"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
