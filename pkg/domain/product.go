package domain

// Product status values as stored by the backend.
const (
	StatusProduced = "produced"
	StatusShipped  = "shipped"
	StatusSold     = "sold"
	StatusRecalled = "recalled"
)

var statusLabels = map[string]string{
	StatusProduced: "已生产",
	StatusShipped:  "已发货",
	StatusSold:     "已售出",
	StatusRecalled: "已召回",
}

var statusClasses = map[string]string{
	StatusProduced: "info",
	StatusShipped:  "warning",
	StatusSold:     "success",
	StatusRecalled: "danger",
}

// StatusLabel returns the display label for a product or tracking status.
// Unknown statuses are returned as-is.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// StatusClass returns the badge class for a status, "secondary" when unknown.
func StatusClass(status string) string {
	if class, ok := statusClasses[status]; ok {
		return class
	}
	return "secondary"
}

// Product is a manufactured, traceable item.
type Product struct {
	ID             int            `json:"id"`
	ProductCode    string         `json:"product_code"`
	ProductName    string         `json:"product_name"`
	ProductType    string         `json:"product_type"`
	Specifications map[string]any `json:"specifications,omitempty"`
	Manufacturer   string         `json:"manufacturer"`
	ProductionDate Timestamp      `json:"production_date"`
	WarrantyPeriod *int           `json:"warranty_period,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      Timestamp      `json:"created_at"`
	UpdatedAt      Timestamp      `json:"updated_at"`
}

// ProductInput is the create/update payload for products.
type ProductInput struct {
	ProductCode    string         `json:"product_code,omitempty"`
	ProductName    string         `json:"product_name,omitempty"`
	ProductType    string         `json:"product_type,omitempty"`
	Specifications map[string]any `json:"specifications,omitempty"`
	Manufacturer   string         `json:"manufacturer,omitempty"`
	ProductionDate string         `json:"production_date,omitempty"`
	WarrantyPeriod *int           `json:"warranty_period,omitempty"`
	Status         string         `json:"status,omitempty"`
}

// ProductPage is one page of GET /products.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Pages    int       `json:"pages"`
}
