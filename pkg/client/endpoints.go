package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// ListOptions are the pagination and filter parameters shared by list endpoints.
// Zero values are omitted from the query.
type ListOptions struct {
	Page    int
	PerPage int
	Status  string
	Type    string
}

func (o ListOptions) values() url.Values {
	params := url.Values{}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Status != "" {
		params.Set("status", o.Status)
	}
	if o.Type != "" {
		params.Set("type", o.Type)
	}
	return params
}

func withQuery(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

// --- Auth ---

// Login exchanges credentials for an access token and user record.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.post(ctx, "/auth/login", body, &res); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("client.Login: response carried no access token")
	}
	return &res, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, r domain.Registration) error {
	if err := c.post(ctx, "/auth/register", r, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// ServerLogout tells the backend the current token is being discarded.
func (c *Client) ServerLogout(ctx context.Context) error {
	if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.ServerLogout: %w", err)
	}
	return nil
}

// --- Dashboard ---

// DashboardStats returns the dashboard overview.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var res struct {
		Stats domain.DashboardStats `json:"stats"`
	}
	if err := c.get(ctx, "/dashboard/stats", &res); err != nil {
		return nil, fmt.Errorf("client.DashboardStats: %w", err)
	}
	return &res.Stats, nil
}

// --- Products ---

// ListProducts fetches a page of products.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (*domain.ProductPage, error) {
	var page domain.ProductPage
	if err := c.get(ctx, withQuery("/products", opts.values()), &page); err != nil {
		return nil, fmt.Errorf("client.ListProducts: %w", err)
	}
	return &page, nil
}

// SearchProducts searches products by keyword.
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var res struct {
		Products []domain.Product `json:"products"`
	}
	if err := c.get(ctx, withQuery("/products/search", params), &res); err != nil {
		return nil, fmt.Errorf("client.SearchProducts: %w", err)
	}
	return res.Products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var res struct {
		Product domain.Product `json:"product"`
	}
	if err := c.get(ctx, "/products/"+strconv.Itoa(id), &res); err != nil {
		return nil, fmt.Errorf("client.GetProduct: %w", err)
	}
	return &res.Product, nil
}

// CreateProduct creates a new product.
func (c *Client) CreateProduct(ctx context.Context, p domain.ProductInput) (*domain.Product, error) {
	var res struct {
		Product domain.Product `json:"product"`
	}
	if err := c.post(ctx, "/products", p, &res); err != nil {
		return nil, fmt.Errorf("client.CreateProduct: %w", err)
	}
	return &res.Product, nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int, p domain.ProductInput) (*domain.Product, error) {
	var res struct {
		Product domain.Product `json:"product"`
	}
	if err := c.call(ctx, "/products/"+strconv.Itoa(id), http.MethodPut, p, &res); err != nil {
		return nil, fmt.Errorf("client.UpdateProduct: %w", err)
	}
	return &res.Product, nil
}

// DeleteProduct deletes a product by ID.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	if err := c.call(ctx, "/products/"+strconv.Itoa(id), http.MethodDelete, nil, nil); err != nil {
		return fmt.Errorf("client.DeleteProduct: %w", err)
	}
	return nil
}

// --- Tracking ---

// ListTracking fetches a page of tracking records.
func (c *Client) ListTracking(ctx context.Context, opts ListOptions) (*domain.TrackingPage, error) {
	var page domain.TrackingPage
	if err := c.get(ctx, withQuery("/tracking", opts.values()), &page); err != nil {
		return nil, fmt.Errorf("client.ListTracking: %w", err)
	}
	return &page, nil
}

// ScanQRCode resolves QR code data to its product and tracking record.
func (c *Client) ScanQRCode(ctx context.Context, qrCode string) (*domain.ScanResult, error) {
	var res domain.ScanResult
	if err := c.post(ctx, "/tracking/scan", map[string]string{"qr_code": qrCode}, &res); err != nil {
		return nil, fmt.Errorf("client.ScanQRCode: %w", err)
	}
	return &res, nil
}

// TrackingHistory returns a product's tracking record and production history.
func (c *Client) TrackingHistory(ctx context.Context, productID int) (*domain.ScanResult, error) {
	var res domain.ScanResult
	if err := c.get(ctx, "/tracking/"+strconv.Itoa(productID)+"/history", &res); err != nil {
		return nil, fmt.Errorf("client.TrackingHistory: %w", err)
	}
	return &res, nil
}

// --- Quality, suppliers, devices ---

// ListQualityChecks fetches a page of quality checks.
func (c *Client) ListQualityChecks(ctx context.Context, opts ListOptions) (*domain.QualityCheckPage, error) {
	var page domain.QualityCheckPage
	if err := c.get(ctx, withQuery("/quality-checks", opts.values()), &page); err != nil {
		return nil, fmt.Errorf("client.ListQualityChecks: %w", err)
	}
	return &page, nil
}

// ListSuppliers fetches a page of suppliers.
func (c *Client) ListSuppliers(ctx context.Context, opts ListOptions) (*domain.SupplierPage, error) {
	var page domain.SupplierPage
	if err := c.get(ctx, withQuery("/suppliers", opts.values()), &page); err != nil {
		return nil, fmt.Errorf("client.ListSuppliers: %w", err)
	}
	return &page, nil
}

// ListDevices fetches a page of devices.
func (c *Client) ListDevices(ctx context.Context, opts ListOptions) (*domain.DevicePage, error) {
	var page domain.DevicePage
	if err := c.get(ctx, withQuery("/devices", opts.values()), &page); err != nil {
		return nil, fmt.Errorf("client.ListDevices: %w", err)
	}
	return &page, nil
}
