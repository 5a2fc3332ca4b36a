// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GeocodingError represents a classified geocoding failure.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType defines the kinds of geocoding failures.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeValidation caller-side bad input, never retried.
	ErrorTypeValidation
	// ErrorTypeRateLimit upstream returned 429.
	ErrorTypeRateLimit
	// ErrorTypeTimeout request exceeded its deadline.
	ErrorTypeTimeout
	// ErrorTypeNotFound no strategy produced a result.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest upstream rejected the request.
	ErrorTypeInvalidRequest
	// ErrorTypeNetwork connectivity failure.
	ErrorTypeNetwork
	// ErrorTypeServer upstream 5xx.
	ErrorTypeServer
	// ErrorTypeParse malformed upstream JSON.
	ErrorTypeParse
	// ErrorTypeInvalidCoordinates non-numeric or out-of-range lat/lon.
	ErrorTypeInvalidCoordinates
)

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// typeOf extracts the ErrorType from an error chain.
func typeOf(err error) (ErrorType, bool) {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type, true
	}

	return ErrorTypeUnknown, false
}

// IsValidationError reports whether the error is the caller's fault.
func IsValidationError(err error) bool {
	t, ok := typeOf(err)

	return ok && t == ErrorTypeValidation
}

// IsRateLimitError reports whether the error is an upstream rate limit.
func IsRateLimitError(err error) bool {
	if t, ok := typeOf(err); ok {
		return t == ErrorTypeRateLimit
	}

	// Detect by common error message
	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsTimeoutError reports whether the error is a timeout.
func IsTimeoutError(err error) bool {
	if t, ok := typeOf(err); ok {
		return t == ErrorTypeTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsRetryable reports whether another attempt against the upstream may
// succeed. Only transient conditions qualify; parse and validation
// failures never do.
func IsRetryable(err error) bool {
	t, ok := typeOf(err)
	if !ok {
		return false
	}

	switch t {
	case ErrorTypeRateLimit, ErrorTypeTimeout, ErrorTypeNetwork, ErrorTypeServer:
		return true
	default:
		return false
	}
}

// ClassifyHTTPError maps an HTTP status code to a geocoding error type.
func ClassifyHTTPError(statusCode int) *GeocodingError {
	switch {
	case statusCode == http.StatusTooManyRequests: // 429
		return &GeocodingError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case statusCode >= 500 && statusCode < 600:
		return &GeocodingError{
			Type:    ErrorTypeServer,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	case statusCode == http.StatusBadRequest: // 400
		return &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case statusCode == http.StatusNotFound: // 404
		return &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "location not found",
		}
	default:
		return &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}
