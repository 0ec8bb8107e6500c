// Mohamedbadhey | 2026
// entity.go

package billing

import (
	"time"
)

type MonthlyBill struct {
	ID         int64     `db:"id"`
	BusinessID int64     `db:"business_id"`
	Period     string    `db:"period"`
	Tier       string    `db:"tier"`
	Amount     float64   `db:"amount"`
	Status     string    `db:"status"`
	DueDate    time.Time `db:"due_date"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type Payment struct {
	ID         int64     `db:"id"`
	BusinessID int64     `db:"business_id"`
	BillID     int64     `db:"bill_id"`
	Amount     float64   `db:"amount"`
	Method     string    `db:"method"`
	PaidAt     time.Time `db:"paid_at"`
}

const (
	StatusCurrent = "current"
	StatusOverdue = "overdue"
	StatusPaid    = "paid"
)

func (b *MonthlyBill) IsOverdue(now time.Time) bool {
	return b.Status != StatusPaid && now.After(b.DueDate)
}
