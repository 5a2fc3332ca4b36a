// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/wareongo/wareongo/utils/httputils"
)

// DefaultBaseURL is the production listing backend.
const DefaultBaseURL = "https://wareongo-website-backend.onrender.com"

// ClientOptions configuration for the listing API client.
type ClientOptions struct {
	// BaseURL of the listing backend
	BaseURL string

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// AdminToken is the opaque bearer token for admin endpoints. It is
	// passed through as-is; validation happens server side.
	AdminToken string

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool
}

// Client talks to the warehouse listing backend.
type Client struct {
	baseURL string
	client  *http.Client
	admin   *http.Client
}

// NewClient creates a listing API client with the provided options.
func NewClient(options *ClientOptions) *Client {
	if options == nil {
		options = &ClientOptions{}
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	userAgent := "wareongo/unknown"
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	transport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		Transport: &httputils.LoggingRoundTripper{
			Writer:    httpLogWriter,
			DumpBody:  options.EnableHTTPBodyTrace,
			Transport: http.DefaultTransport,
		},
	}

	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}

	admin := client
	if options.AdminToken != "" {
		admin = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: options.AdminToken}),
				Base:   transport,
			},
		}
	}

	return &Client{
		baseURL: baseURL,
		client:  client,
		admin:   admin,
	}
}

// List fetches one page of listings matching the filter.
func (c *Client) List(ctx context.Context, filter Filter) (*ListResponse, error) {
	params := url.Values{}

	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}

	if filter.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(filter.PageSize))
	}

	if filter.City != "" {
		params.Set("city", filter.City)
	}

	if filter.State != "" {
		params.Set("state", filter.State)
	}

	if filter.WarehouseType != "" {
		params.Set("warehouseType", filter.WarehouseType)
	}

	if filter.FireNocAvailable != nil {
		params.Set("fireNocAvailable", strconv.FormatBool(*filter.FireNocAvailable))
	}

	if filter.MinSpace > 0 {
		params.Set("minSpace", strconv.Itoa(filter.MinSpace))
	}

	if filter.MaxSpace > 0 {
		params.Set("maxSpace", strconv.Itoa(filter.MaxSpace))
	}

	var out ListResponse
	if err := c.doJSON(ctx, c.client, http.MethodGet, "/warehouses?"+params.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("listing warehouses: %w", err)
	}

	return &out, nil
}

// Get fetches a single listing by id.
func (c *Client) Get(ctx context.Context, id int) (*Warehouse, error) {
	var out Warehouse
	if err := c.doJSON(ctx, c.client, http.MethodGet, fmt.Sprintf("/warehouses/%d", id), nil, &out); err != nil {
		return nil, fmt.Errorf("getting warehouse %d: %w", id, err)
	}

	return &out, nil
}

// SubmitEnquiry sends a contact-form lead to the backend.
func (c *Client) SubmitEnquiry(ctx context.Context, enquiry *Enquiry) error {
	if err := c.doJSON(ctx, c.client, http.MethodPost, "/enquiries", enquiry, nil); err != nil {
		return fmt.Errorf("submitting enquiry: %w", err)
	}

	return nil
}

// SubmitCustomerRequest sends a space-requirement lead to the backend.
func (c *Client) SubmitCustomerRequest(ctx context.Context, request *CustomerRequest) error {
	if err := c.doJSON(ctx, c.client, http.MethodPost, "/customer-requests", request, nil); err != nil {
		return fmt.Errorf("submitting customer request: %w", err)
	}

	return nil
}

// CreateWarehouse adds a listing through the admin API.
func (c *Client) CreateWarehouse(ctx context.Context, w *Warehouse) (*Warehouse, error) {
	var out Warehouse
	if err := c.doJSON(ctx, c.admin, http.MethodPost, "/warehouses", w, &out); err != nil {
		return nil, fmt.Errorf("creating warehouse: %w", err)
	}

	return &out, nil
}

// UpdateWarehouse replaces a listing through the admin API.
func (c *Client) UpdateWarehouse(ctx context.Context, w *Warehouse) error {
	if err := c.doJSON(ctx, c.admin, http.MethodPut, fmt.Sprintf("/warehouses/%d", w.ID), w, nil); err != nil {
		return fmt.Errorf("updating warehouse %d: %w", w.ID, err)
	}

	return nil
}

// doJSON performs one request/response exchange. Non-2xx responses are
// decoded into the backend's error envelope.
func (c *Client) doJSON(ctx context.Context, client *http.Client, method, path string, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
