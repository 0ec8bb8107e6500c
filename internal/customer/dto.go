// Mohamedbadhey | 2026
// dto.go

package customer

import (
	"time"
)

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=1,max=200"`
	Phone   *string `json:"phone"   validate:"omitempty,max=32"`
	Email   *string `json:"email"   validate:"omitempty,email,max=255"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"    validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone,omitempty"   validate:"omitempty,max=32"`
	Email   *string `json:"email,omitempty"   validate:"omitempty,email,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type CustomerResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	Name       string    `json:"name"`
	Phone      *string   `json:"phone,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Address    *string   `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListCustomersParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p *ListCustomersParams) Normalize() {
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

func (p *ListCustomersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToCustomerResponse(c *Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func ToCustomerResponseList(customers []Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, ToCustomerResponse(&c))
	}
	return responses
}
