// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode resolves warehouse location descriptions to map
// coordinates using a public Nominatim-style endpoint. Results degrade to
// increasingly coarse approximations instead of failing: postal code,
// then city, then state, then a fixed country center.
package geocode

import (
	"context"

	"github.com/wareongo/wareongo/spatial"
)

// Accuracy classifies how precisely a result locates an address.
type Accuracy string

const (
	AccuracyPostal      Accuracy = "postal"
	AccuracyCity        Accuracy = "city"
	AccuracyState       Accuracy = "state"
	AccuracyApproximate Accuracy = "approximate"
)

// Query describes the location of a listing. City and State are required;
// PostalCode is optional and Country defaults to India.
type Query struct {
	PostalCode string
	City       string
	State      string
	Country    string
}

// Result is a resolved coordinate with its accuracy tier.
type Result struct {
	Point       spatial.Point `json:"point"`
	Accuracy    Accuracy      `json:"accuracy"`
	DisplayName string        `json:"display_name,omitempty"`
}

// Resolver interface for coordinate resolution providers.
type Resolver interface {
	Resolve(ctx context.Context, query Query) (*Result, error)
}
