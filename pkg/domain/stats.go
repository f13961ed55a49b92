package domain

// DashboardStats is the "stats" object of GET /dashboard/stats.
type DashboardStats struct {
	Overview struct {
		TotalProducts      int `json:"total_products"`
		NewProducts7d      int `json:"new_products_7d"`
		TotalQualityChecks int `json:"total_quality_checks"`
		TotalDevices       int `json:"total_devices"`
		TotalTracking      int `json:"total_tracking"`
	} `json:"overview"`
	Products struct {
		ByStatus map[string]int `json:"by_status"`
	} `json:"products"`
	Quality struct {
		Passed         int     `json:"passed"`
		Failed         int     `json:"failed"`
		RecentChecks7d int     `json:"recent_checks_7d"`
		PassRate       float64 `json:"pass_rate"`
	} `json:"quality"`
	Devices struct {
		Active      int `json:"active"`
		Maintenance int `json:"maintenance"`
		Inactive    int `json:"inactive"`
	} `json:"devices"`
	RecentActivities []Activity `json:"recent_activities"`
}

// Activity is one entry of the dashboard's recent activity feed.
type Activity struct {
	Type        string    `json:"type"`
	ProductName string    `json:"product_name"`
	ProductCode string    `json:"product_code"`
	CheckType   string    `json:"check_type"`
	Result      string    `json:"result"`
	Time        Timestamp `json:"time"`
}
