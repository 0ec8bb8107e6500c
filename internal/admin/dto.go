// Mohamedbadhey | 2026
// dto.go

package admin

type ResetBusinessRequest struct {
	BusinessID int64 `json:"business_id" validate:"required,gt=0"`
}

// ResetCounts reports per-table deletions from a business reset, in the
// order the deletes run.
type ResetCounts struct {
	SaleItems    int64 `json:"sale_items"`
	Sales        int64 `json:"sales"`
	Payments     int64 `json:"payments"`
	MonthlyBills int64 `json:"monthly_bills"`
	Products     int64 `json:"products"`
	Categories   int64 `json:"categories"`
	Customers    int64 `json:"customers"`
	Users        int64 `json:"users"`
}

func (c ResetCounts) Total() int64 {
	return c.SaleItems + c.Sales + c.Payments + c.MonthlyBills +
		c.Products + c.Categories + c.Customers + c.Users
}

type ResetBusinessResponse struct {
	BusinessID int64       `json:"business_id"`
	Deleted    ResetCounts `json:"deleted"`
	Total      int64       `json:"total_deleted"`
}

// DataCounts is the read-only row census for one business.
type DataCounts struct {
	BusinessID   int64 `json:"business_id"`
	Users        int64 `json:"users"`
	Categories   int64 `json:"categories"`
	Products     int64 `json:"products"`
	Customers    int64 `json:"customers"`
	Sales        int64 `json:"sales"`
	SaleItems    int64 `json:"sale_items"`
	MonthlyBills int64 `json:"monthly_bills"`
	Payments     int64 `json:"payments"`
}

type BusinessRevenue struct {
	BusinessID     int64   `db:"business_id"    json:"business_id"`
	Name           string  `db:"name"           json:"name"`
	Tier           string  `db:"tier"           json:"tier"`
	SalesRevenue   float64 `db:"sales_revenue"  json:"sales_revenue"`
	BillingRevenue float64 `db:"billing_revenue" json:"billing_revenue"`
	Total          float64 `db:"-"              json:"total"`
}

type TierRevenue struct {
	Tier       string  `json:"tier"`
	Businesses int     `json:"businesses"`
	Revenue    float64 `json:"revenue"`
}

type BillStatusCounts struct {
	Current int64 `db:"current" json:"current"`
	Overdue int64 `db:"overdue" json:"overdue"`
	Paid    int64 `db:"paid"    json:"paid"`
}

type RevenueAnalyticsResponse struct {
	Range        string            `json:"range"`
	Businesses   []BusinessRevenue `json:"businesses"`
	Tiers        []TierRevenue     `json:"tiers"`
	Bills        BillStatusCounts  `json:"bills"`
	TotalSales   float64           `json:"total_sales"`
	TotalBilling float64           `json:"total_billing"`
	GrandTotal   float64           `json:"grand_total"`
}
