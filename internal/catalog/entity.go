// Mohamedbadhey | 2026
// entity.go

package catalog

import (
	"time"
)

type Category struct {
	ID          int64     `db:"id"`
	BusinessID  int64     `db:"business_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Product struct {
	ID             int64     `db:"id"`
	BusinessID     int64     `db:"business_id"`
	CategoryID     *int64    `db:"category_id"`
	Name           string    `db:"name"`
	SKU            *string   `db:"sku"`
	RetailPrice    float64   `db:"retail_price"`
	WholesalePrice float64   `db:"wholesale_price"`
	StockQuantity  int       `db:"stock_quantity"`
	LowStockLevel  int       `db:"low_stock_level"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockLevel
}

// PriceFor returns the unit price for a line-item mode.
func (p *Product) PriceFor(mode string) float64 {
	if mode == ModeWholesale {
		return p.WholesalePrice
	}
	return p.RetailPrice
}

const (
	ModeRetail    = "retail"
	ModeWholesale = "wholesale"
)
