package domain

// TrackingData is the live traceability record attached to a product.
type TrackingData struct {
	ID              int       `json:"id"`
	ProductID       int       `json:"product_id"`
	QRCode          string    `json:"qr_code"`
	BlockchainHash  string    `json:"blockchain_hash,omitempty"`
	CurrentLocation string    `json:"current_location"`
	CurrentStatus   string    `json:"current_status"`
	LastUpdated     Timestamp `json:"last_updated"`
	CreatedAt       Timestamp `json:"created_at"`
}

// ProductionRecord is one process step in a product's manufacture.
type ProductionRecord struct {
	ID          int            `json:"id"`
	ProductID   int            `json:"product_id"`
	ProcessStep string         `json:"process_step"`
	EquipmentID *int           `json:"equipment_id,omitempty"`
	OperatorID  *int           `json:"operator_id,omitempty"`
	StartTime   Timestamp      `json:"start_time"`
	EndTime     Timestamp      `json:"end_time"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Status      string         `json:"status"`
}

// ScanResult is the body of POST /tracking/scan and
// GET /tracking/{product_id}/history.
type ScanResult struct {
	Product           *Product           `json:"product"`
	Tracking          *TrackingData      `json:"tracking"`
	ProductionHistory []ProductionRecord `json:"production_history"`
}

// TrackingPage is one page of GET /tracking.
type TrackingPage struct {
	Tracking []TrackingData `json:"tracking"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PerPage  int            `json:"per_page"`
}
