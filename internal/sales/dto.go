// Mohamedbadhey | 2026
// dto.go

package sales

import (
	"time"
)

type SaleItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
	Mode      string `json:"mode"       validate:"omitempty,oneof=retail wholesale"`
}

type CreateSaleRequest struct {
	CustomerID    *int64            `json:"customer_id"    validate:"omitempty,gt=0"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash credit mobile"`
	AmountPaid    *float64          `json:"amount_paid"    validate:"omitempty,gte=0"`
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type SaleItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Mode      string  `json:"mode"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type SaleResponse struct {
	ID            int64              `json:"id"`
	BusinessID    int64              `json:"business_id"`
	CashierUserID string             `json:"cashier_user_id"`
	CustomerID    *int64             `json:"customer_id,omitempty"`
	SaleMode      string             `json:"sale_mode"`
	PaymentMethod string             `json:"payment_method"`
	TotalAmount   float64            `json:"total_amount"`
	AmountPaid    float64            `json:"amount_paid"`
	Outstanding   float64            `json:"outstanding"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type ListSalesParams struct {
	Page          int
	PageSize      int
	PaymentMethod string
	CashierUserID string
}

func (p *ListSalesParams) Normalize() {
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

func (p *ListSalesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToSaleItemResponse(i *SaleItem) SaleItemResponse {
	return SaleItemResponse{
		ID:        i.ID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Mode:      i.Mode,
		UnitPrice: i.UnitPrice,
		Subtotal:  i.Subtotal,
	}
}

func ToSaleResponse(s *Sale, items []SaleItem) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID,
		BusinessID:    s.BusinessID,
		CashierUserID: s.CashierUserID,
		CustomerID:    s.CustomerID,
		SaleMode:      s.SaleMode,
		PaymentMethod: s.PaymentMethod,
		TotalAmount:   s.TotalAmount,
		AmountPaid:    s.AmountPaid,
		Outstanding:   s.Outstanding(),
		CreatedAt:     s.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, ToSaleItemResponse(&item))
	}
	return resp
}

func ToSaleResponseList(sales []Sale) []SaleResponse {
	responses := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		responses = append(responses, ToSaleResponse(&s, nil))
	}
	return responses
}
