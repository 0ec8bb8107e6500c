// Mohamedbadhey | 2026
// entity.go

package customer

import (
	"time"
)

type Customer struct {
	ID         int64     `db:"id"`
	BusinessID int64     `db:"business_id"`
	Name       string    `db:"name"`
	Phone      *string   `db:"phone"`
	Email      *string   `db:"email"`
	Address    *string   `db:"address"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
