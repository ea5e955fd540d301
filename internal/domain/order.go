package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// Order snapshots the cart at purchase time; unit prices on the items are
// frozen and never re-read from the catalog.
type Order struct {
	ID         int64           `json:"id,string"`
	Ref        string          `gorm:"uniqueIndex;size:64" json:"ref"`
	UserID     int64           `gorm:"index" json:"user_id,string"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	Country    string          `json:"country"`
	PostalCode string          `gorm:"size:32" json:"postal_code"`
	Subtotal   decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	Shipping   decimal.Decimal `gorm:"type:numeric(12,2)" json:"shipping"`
	Tax        decimal.Decimal `gorm:"type:numeric(12,2)" json:"tax"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Status     string          `gorm:"size:32;index" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        int64           `json:"id,string"`
	OrderID   int64           `gorm:"index" json:"order_id,string"`
	ProductID int64           `json:"product_id,string"`
	Name      string          `json:"name"`
	Color     string          `gorm:"size:64" json:"color"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "order_items"
}
