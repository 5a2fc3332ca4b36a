// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

// Package warehouse is the client for the remote listing REST API.
package warehouse

import (
	"encoding/json"
	"fmt"

	"github.com/wareongo/wareongo/imagery"
)

// PhotoList absorbs the backend's inconsistent photos column: a native
// JSON array, a stringified JSON array, a comma-joined string, or null.
// An unparseable value decodes to an empty list rather than failing the
// whole record; a listing without photos is still a listing.
type PhotoList []string

// UnmarshalJSON implements json.Unmarshaler.
func (p *PhotoList) UnmarshalJSON(data []byte) error {
	*p = nil

	var asArray []string
	if err := json.Unmarshal(data, &asArray); err == nil {
		*p = imagery.NormalizePhotos(asArray)

		return nil
	}

	var asString *string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString != nil {
			*p = imagery.NormalizePhotos(*asString)
		}

		return nil
	}

	return nil
}

// ImageURLs returns the displayable subset of the photo list.
func (p PhotoList) ImageURLs() []string {
	return imagery.ExtractImageURLs([]string(p))
}

// Warehouse is one listing as the backend serves it. Nullable columns map
// to pointers.
type Warehouse struct {
	ID                  int       `json:"id"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	PostalCode          string    `json:"postalCode,omitempty"`
	WarehouseType       string    `json:"warehouseType,omitempty"`
	TotalSpaceSqft      []int     `json:"totalSpaceSqft"`
	ClearHeightFt       *string   `json:"clearHeightFt"`
	Compliances         string    `json:"compliances"`
	OtherSpecifications *string   `json:"otherSpecifications"`
	RatePerSqft         string    `json:"ratePerSqft"`
	Photos              PhotoList `json:"photos"`
	FireNocAvailable    *bool     `json:"fireNocAvailable"`
	FireSafetyMeasures  *string   `json:"fireSafetyMeasures"`
}

// Pagination is the listing envelope's paging block.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// ListResponse is the GET /warehouses envelope.
type ListResponse struct {
	Data       []Warehouse `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Filter narrows a listing query. Zero values are omitted from the
// request.
type Filter struct {
	Page             int
	PageSize         int
	City             string
	State            string
	WarehouseType    string
	FireNocAvailable *bool
	MinSpace         int
	MaxSpace         int
}

// Enquiry is the contact-form lead (POST /enquiries).
type Enquiry struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
	Source string `json:"source"`
}

// CustomerRequest is the space-requirement lead (POST /customer-requests).
type CustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Requirements string `json:"requirements"`
}

// APIError is the backend's error envelope plus the HTTP status it
// arrived with.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("warehouse api: HTTP %d", e.StatusCode)
	}

	return fmt.Sprintf("warehouse api: %s (HTTP %d)", e.Message, e.StatusCode)
}
