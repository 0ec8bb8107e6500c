// Mohamedbadhey | 2026
// entity.go

package sales

import (
	"time"
)

type Sale struct {
	ID            int64     `db:"id"`
	BusinessID    int64     `db:"business_id"`
	CashierUserID string    `db:"cashier_user_id"`
	CustomerID    *int64    `db:"customer_id"`
	SaleMode      string    `db:"sale_mode"`
	PaymentMethod string    `db:"payment_method"`
	TotalAmount   float64   `db:"total_amount"`
	AmountPaid    float64   `db:"amount_paid"`
	CreatedAt     time.Time `db:"created_at"`
}

type SaleItem struct {
	ID        int64   `db:"id"`
	SaleID    int64   `db:"sale_id"`
	ProductID int64   `db:"product_id"`
	Quantity  int     `db:"quantity"`
	Mode      string  `db:"mode"`
	UnitPrice float64 `db:"unit_price"`
	Subtotal  float64 `db:"subtotal"`
}

const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
	PaymentMobile = "mobile"
)

// Outstanding is the unpaid remainder of a credit sale.
func (s *Sale) Outstanding() float64 {
	return s.TotalAmount - s.AmountPaid
}

func (s *Sale) IsSettled() bool {
	return s.Outstanding() <= 0
}
