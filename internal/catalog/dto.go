// Mohamedbadhey | 2026
// dto.go

package catalog

import (
	"time"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	BusinessID  int64     `json:"business_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name           string  `json:"name"            validate:"required,min=1,max=200"`
	CategoryID     *int64  `json:"category_id"     validate:"omitempty,gt=0"`
	SKU            *string `json:"sku"             validate:"omitempty,max=64"`
	RetailPrice    float64 `json:"retail_price"    validate:"gte=0"`
	WholesalePrice float64 `json:"wholesale_price" validate:"gte=0"`
	StockQuantity  int     `json:"stock_quantity"  validate:"gte=0"`
	LowStockLevel  int     `json:"low_stock_level" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name           *string  `json:"name,omitempty"            validate:"omitempty,min=1,max=200"`
	CategoryID     *int64   `json:"category_id,omitempty"     validate:"omitempty,gt=0"`
	SKU            *string  `json:"sku,omitempty"             validate:"omitempty,max=64"`
	RetailPrice    *float64 `json:"retail_price,omitempty"    validate:"omitempty,gte=0"`
	WholesalePrice *float64 `json:"wholesale_price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity  *int     `json:"stock_quantity,omitempty"  validate:"omitempty,gte=0"`
	LowStockLevel  *int     `json:"low_stock_level,omitempty" validate:"omitempty,gte=0"`
}

type ProductResponse struct {
	ID             int64     `json:"id"`
	BusinessID     int64     `json:"business_id"`
	CategoryID     *int64    `json:"category_id,omitempty"`
	Name           string    `json:"name"`
	SKU            *string   `json:"sku,omitempty"`
	RetailPrice    float64   `json:"retail_price"`
	WholesalePrice float64   `json:"wholesale_price"`
	StockQuantity  int       `json:"stock_quantity"`
	LowStockLevel  int       `json:"low_stock_level"`
	LowStock       bool      `json:"low_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		BusinessID:  c.BusinessID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, ToCategoryResponse(&c))
	}
	return responses
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		BusinessID:     p.BusinessID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		SKU:            p.SKU,
		RetailPrice:    p.RetailPrice,
		WholesalePrice: p.WholesalePrice,
		StockQuantity:  p.StockQuantity,
		LowStockLevel:  p.LowStockLevel,
		LowStock:       p.IsLowStock(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(&p))
	}
	return responses
}
