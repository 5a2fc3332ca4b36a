// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"strings"
)

const (
	// DefaultCountry applied when a query leaves the country empty.
	DefaultCountry = "India"

	maxQueryLength = 200
)

// validateQuery checks a query before any network access and fills in the
// default country. City and state must be non-empty after trimming.
func validateQuery(query *Query) error {
	if strings.TrimSpace(query.City) == "" {
		return &GeocodingError{
			Type:    ErrorTypeValidation,
			Message: "city is required and must be a non-empty string",
		}
	}

	if strings.TrimSpace(query.State) == "" {
		return &GeocodingError{
			Type:    ErrorTypeValidation,
			Message: "state is required and must be a non-empty string",
		}
	}

	if query.Country == "" {
		query.Country = DefaultCountry
	}

	return nil
}

// sanitizeQuery strips characters usable for HTML or command injection
// from a free-text geocoding query and caps its length.
func sanitizeQuery(query string) string {
	query = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', '&', ';', '|', '$', '`':
			return -1
		default:
			return r
		}
	}, query)

	query = strings.TrimSpace(query)
	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}

	return query
}
