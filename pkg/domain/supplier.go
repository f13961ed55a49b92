package domain

// Supplier provides materials to the production line.
type Supplier struct {
	ID            int       `json:"id"`
	SupplierCode  string    `json:"supplier_code"`
	SupplierName  string    `json:"supplier_name"`
	ContactPerson string    `json:"contact_person"`
	ContactPhone  string    `json:"contact_phone"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// SupplierPage is one page of GET /suppliers.
type SupplierPage struct {
	Suppliers []Supplier `json:"suppliers"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PerPage   int        `json:"per_page"`
}
