package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Shoppers only ever read products; all
// mutations go through the admin API.
type Product struct {
	ID         int64           `json:"id,string" form:"id"`
	Name       string          `gorm:"index" json:"name" form:"name"`
	Brand      string          `gorm:"index" json:"brand" form:"brand"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Colors     []string        `gorm:"serializer:json" json:"colors"`
	InStock    bool            `json:"in_stock" form:"in_stock"`
	Featured   bool            `gorm:"index" json:"featured" form:"featured"`
	NewArrival bool            `gorm:"index" json:"new_arrival" form:"new_arrival"`
	Image      string          `gorm:"size:1024" json:"image" form:"image"`
	Gallery    []string        `gorm:"serializer:json" json:"gallery"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// HasColor reports whether color is one of the product's variants.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
