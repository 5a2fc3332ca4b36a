// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the website's backend-for-frontend: listing
// pages with cleaned photos, geocoded map data, and lead-capture
// passthrough.
package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wareongo/wareongo/geocode"
	"github.com/wareongo/wareongo/spatial"
	"github.com/wareongo/wareongo/warehouse"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50

	defaultPinResolution = 5
)

// Options configuration for the web layer.
type Options struct {
	// Addr to listen on, host:port
	Addr string

	// AdminToken gates the admin endpoints. Opaque: compared, never
	// decoded.
	AdminToken string
}

// Server wires the listing client and the geocoder behind HTTP handlers.
type Server struct {
	warehouses *warehouse.Client
	geocoder   *geocode.Client
	addr       string
	adminToken string
}

// NewServer creates the web layer.
func NewServer(warehouses *warehouse.Client, geocoder *geocode.Client, options *Options) *Server {
	if options == nil {
		options = &Options{}
	}

	addr := options.Addr
	if addr == "" {
		addr = "localhost:8080"
	}

	return &Server{
		warehouses: warehouses,
		geocoder:   geocoder,
		addr:       addr,
		adminToken: options.AdminToken,
	}
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	return s.Router().Run(s.addr)
}

// Router builds the gin engine. Split from Run for tests.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/warehouses", s.listWarehouses)
	r.GET("/api/warehouses/:id", s.getWarehouse)
	r.GET("/api/warehouses/:id/location", s.getWarehouseLocation)
	r.GET("/api/map/pins", s.getMapPins)
	r.POST("/api/enquiries", s.postEnquiry)
	r.POST("/api/customer-requests", s.postCustomerRequest)
	r.GET("/api/health", s.getHealth)

	admin := r.Group("/api/admin", s.requireAdmin)
	admin.POST("/warehouses", s.createWarehouse)
	admin.PUT("/warehouses/:id", s.updateWarehouse)

	return r
}

// requireAdmin checks the bearer token against the configured one. The
// token itself is opaque; issuing and validating identities is the
// upstream auth provider's business.
func (s *Server) requireAdmin(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")

	token, ok := strings.CutPrefix(header, "Bearer ")
	if s.adminToken == "" || !ok || token != s.adminToken {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})

		return
	}

	ctx.Next()
}

func parseFilter(ctx *gin.Context) warehouse.Filter {
	filter := warehouse.Filter{
		Page:          1,
		PageSize:      defaultPageSize,
		City:          ctx.Query("city"),
		State:         ctx.Query("state"),
		WarehouseType: ctx.Query("warehouseType"),
	}

	if page, err := strconv.Atoi(ctx.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(ctx.Query("pageSize")); err == nil && size > 0 {
		filter.PageSize = min(size, maxPageSize)
	}

	if raw := ctx.Query("fireNocAvailable"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.FireNocAvailable = &v
		}
	}

	if v, err := strconv.Atoi(ctx.Query("minSpace")); err == nil && v > 0 {
		filter.MinSpace = v
	}

	if v, err := strconv.Atoi(ctx.Query("maxSpace")); err == nil && v > 0 {
		filter.MaxSpace = v
	}

	return filter
}

func (s *Server) listWarehouses(ctx *gin.Context) {
	resp, err := s.warehouses.List(ctx.Request.Context(), parseFilter(ctx))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	cards := make([]warehouse.Card, 0, len(resp.Data))
	for i := range resp.Data {
		cards = append(cards, warehouse.ToCard(&resp.Data[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data":       cards,
		"pagination": resp.Pagination,
	})
}

// warehouseDetail is the raw listing plus its photos reduced to the URLs
// actually worth rendering.
type warehouseDetail struct {
	warehouse.Warehouse
	Images []string `json:"images"`
}

func (s *Server) getWarehouse(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid warehouse id"})

		return
	}

	w, err := s.warehouses.Get(ctx.Request.Context(), id)
	if err != nil {
		status := http.StatusBadGateway

		var apiErr *warehouse.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}

		ctx.JSON(status, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, warehouseDetail{
		Warehouse: *w,
		Images:    w.Photos.ImageURLs(),
	})
}

// locationResponse tags a coordinate with how precisely it was resolved
// so the map can size its marker.
type locationResponse struct {
	Point       spatial.Point    `json:"point"`
	Accuracy    geocode.Accuracy `json:"accuracy"`
	DisplayName string           `json:"display_name,omitempty"`
}

func (s *Server) getWarehouseLocation(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid warehouse id"})

		return
	}

	w, err := s.warehouses.Get(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	result, err := s.geocoder.Resolve(ctx.Request.Context(), geocode.Query{
		PostalCode: w.PostalCode,
		City:       w.City,
		State:      w.State,
	})
	if err != nil {
		// The map degrades to the country center rather than erroring;
		// a missing pin must never block the detail page.
		log.Printf("geocoding warehouse %d failed: %v", id, err)

		result = geocode.ApproximateIndiaCenter()
	}

	ctx.JSON(http.StatusOK, locationResponse{
		Point:       result.Point,
		Accuracy:    result.Accuracy,
		DisplayName: result.DisplayName,
	})
}

func (s *Server) getMapPins(ctx *gin.Context) {
	resolution := defaultPinResolution
	if v, err := strconv.Atoi(ctx.Query("resolution")); err == nil {
		resolution = v
	}

	resp, err := s.warehouses.List(ctx.Request.Context(), parseFilter(ctx))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	pins := make([]spatial.Pin, 0, len(resp.Data))

	for i := range resp.Data {
		w := &resp.Data[i]

		result, err := s.geocoder.Resolve(ctx.Request.Context(), geocode.Query{
			PostalCode: w.PostalCode,
			City:       w.City,
			State:      w.State,
		})
		if err != nil {
			log.Printf("skipping pin for warehouse %d: %v", w.ID, err)

			continue
		}

		pins = append(pins, spatial.Pin{ID: w.ID, Point: result.Point})
	}

	clusters, err := spatial.ClusterPins(pins, resolution)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"clusters": clusters})
}

func (s *Server) postEnquiry(ctx *gin.Context) {
	var enquiry warehouse.Enquiry
	if err := ctx.ShouldBindJSON(&enquiry); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := s.warehouses.SubmitEnquiry(ctx.Request.Context(), &enquiry); err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) postCustomerRequest(ctx *gin.Context) {
	var request warehouse.CustomerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := s.warehouses.SubmitCustomerRequest(ctx.Request.Context(), &request); err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) getHealth(ctx *gin.Context) {
	status, stats := s.geocoder.Health(ctx.Request.Context())

	code := http.StatusOK
	if status == geocode.HealthUnhealthy {
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":           status,
		"cache_size":       stats.CacheSize,
		"pending_requests": stats.Pending,
	})
}

func (s *Server) createWarehouse(ctx *gin.Context) {
	var w warehouse.Warehouse
	if err := ctx.ShouldBindJSON(&w); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	created, err := s.warehouses.CreateWarehouse(ctx.Request.Context(), &w)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, created)
}

func (s *Server) updateWarehouse(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid warehouse id"})

		return
	}

	var w warehouse.Warehouse
	if err := ctx.ShouldBindJSON(&w); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	w.ID = id

	if err := s.warehouses.UpdateWarehouse(ctx.Request.Context(), &w); err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
