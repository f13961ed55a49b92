package domain

// QualityCheck is an inspection performed on a product.
type QualityCheck struct {
	ID          int            `json:"id"`
	ProductID   int            `json:"product_id"`
	InspectorID int            `json:"inspector_id"`
	CheckTime   Timestamp      `json:"check_time"`
	CheckType   string         `json:"check_type"`
	CheckItems  map[string]any `json:"check_items,omitempty"`
	PassStatus  bool           `json:"pass_status"`
	Comments    string         `json:"comments,omitempty"`
	Images      []string       `json:"images,omitempty"`
}

// QualityCheckPage is one page of GET /quality-checks.
type QualityCheckPage struct {
	QualityChecks []QualityCheck `json:"quality_checks"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	PerPage       int            `json:"per_page"`
}
