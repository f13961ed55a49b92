package domain

// Device is a piece of production, inspection or storage equipment.
type Device struct {
	ID              int       `json:"id"`
	DeviceCode      string    `json:"device_code"`
	DeviceName      string    `json:"device_name"`
	DeviceType      string    `json:"device_type"`
	Location        string    `json:"location,omitempty"`
	Status          string    `json:"status"`
	LastMaintenance Timestamp `json:"last_maintenance"`
	NextMaintenance Timestamp `json:"next_maintenance"`
	Manufacturer    string    `json:"manufacturer,omitempty"`
	PurchaseDate    Timestamp `json:"purchase_date"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

// DevicePage is one page of GET /devices.
type DevicePage struct {
	Devices []Device `json:"devices"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
}
