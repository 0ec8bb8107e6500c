// Mohamedbadhey | 2026
// dto.go

package billing

import (
	"time"
)

type CreateBillRequest struct {
	BusinessID int64   `json:"business_id" validate:"required,gt=0"`
	Period     string  `json:"period"      validate:"required,len=7"`
	Tier       string  `json:"tier"        validate:"required,oneof=basic premium enterprise"`
	Amount     float64 `json:"amount"      validate:"required,gt=0"`
	DueDate    string  `json:"due_date"    validate:"required,datetime=2006-01-02"`
}

type PayBillRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=cash mobile transfer"`
}

type BillResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	Period     string    `json:"period"`
	Tier       string    `json:"tier"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	DueDate    time.Time `json:"due_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaymentResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	BillID     int64     `json:"bill_id"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	PaidAt     time.Time `json:"paid_at"`
}

type SweepOverdueResponse struct {
	MarkedOverdue int64 `json:"marked_overdue"`
}

type ListBillsParams struct {
	Page     int
	PageSize int
	Status   string
}

func (p *ListBillsParams) Normalize() {
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

func (p *ListBillsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToBillResponse(b *MonthlyBill) BillResponse {
	return BillResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		Period:     b.Period,
		Tier:       b.Tier,
		Amount:     b.Amount,
		Status:     b.Status,
		DueDate:    b.DueDate,
		CreatedAt:  b.CreatedAt,
	}
}

func ToBillResponseList(bills []MonthlyBill) []BillResponse {
	responses := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		responses = append(responses, ToBillResponse(&b))
	}
	return responses
}

func ToPaymentResponse(p *Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		BusinessID: p.BusinessID,
		BillID:     p.BillID,
		Amount:     p.Amount,
		Method:     p.Method,
		PaidAt:     p.PaidAt,
	}
}

func ToPaymentResponseList(payments []Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, ToPaymentResponse(&p))
	}
	return responses
}
