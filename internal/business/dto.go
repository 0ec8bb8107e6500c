// Mohamedbadhey | 2026
// dto.go

package business

import (
	"time"
)

type BusinessResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Tier       string    `json:"tier"`
	LogoURL    *string   `json:"logo_url,omitempty"`
	ThemeColor *string   `json:"theme_color,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListBusinessesParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status"`
}

func (p *ListBusinessesParams) Normalize() {
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

func (p *ListBusinessesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type UpdateBusinessRequest struct {
	Name       *string `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Status     *string `json:"status,omitempty"      validate:"omitempty,oneof=active suspended deleted"`
	Tier       *string `json:"tier,omitempty"        validate:"omitempty,oneof=basic premium enterprise"`
	LogoURL    *string `json:"logo_url,omitempty"    validate:"omitempty,max=500"`
	ThemeColor *string `json:"theme_color,omitempty" validate:"omitempty,max=20"`
}

// BusinessDetails is the superadmin drill-down: the business plus its
// per-table counts and revenue, always computed within that one scope.
type BusinessDetails struct {
	Business  BusinessResponse `json:"business"`
	Users     int              `json:"users"`
	Products  int              `json:"products"`
	Customers int              `json:"customers"`
	Sales     int              `json:"sales"`
	Revenue   float64          `json:"revenue"`
}

func ToBusinessResponse(b *Business) BusinessResponse {
	return BusinessResponse{
		ID:         b.ID,
		Name:       b.Name,
		Status:     b.Status,
		Tier:       b.Tier,
		LogoURL:    b.LogoURL,
		ThemeColor: b.ThemeColor,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func ToBusinessResponseList(businesses []Business) []BusinessResponse {
	responses := make([]BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		responses = append(responses, ToBusinessResponse(&b))
	}
	return responses
}
