// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

// Package imagery turns the listing backend's noisy "photos" field into
// displayable image URLs and tracks carousel navigation state over them.
package imagery

import (
	"encoding/json"
	"strings"
)

// nonImageExtensions are rejected outright. The ".doc" entry also covers
// ".docx" since matching is by substring, mirroring ".xls"/".xlsx".
var nonImageExtensions = []string{
	".pdf", ".doc", ".xls", ".txt", ".zip", ".rar", ".7z",
}

var imageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg",
}

// DefaultImageHosts are content-delivery and storage providers whose URLs
// are trusted to serve images even without an extension.
var DefaultImageHosts = []string{
	"r2.dev",
	"cloudinary.com",
	"imgur.com",
	"amazonaws.com",
	"googleusercontent.com",
	"imagekit.io",
	"picsum.photos",
	"placeholder.com",
	"unsplash.com",
}

// URLFilter decides which raw photo URLs are worth rendering. The zero
// value uses DefaultImageHosts.
type URLFilter struct {
	// ImageHosts extends the extension check with a host allowlist
	ImageHosts []string
}

// Accept reports whether a URL looks like a displayable image. This is a
// heuristic on the URL text only; no HEAD request is ever made.
func (f *URLFilter) Accept(rawURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(rawURL))

	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}

	for _, ext := range nonImageExtensions {
		if strings.Contains(lower, ext) {
			return false
		}
	}

	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}

	hosts := f.ImageHosts
	if hosts == nil {
		hosts = DefaultImageHosts
	}

	for _, host := range hosts {
		if strings.Contains(lower, host) {
			return true
		}
	}

	return false
}

// Filter keeps the URLs accepted by the predicate, preserving order.
// Duplicates are kept: the backend occasionally repeats a photo and the
// carousel positions must match what it sent.
func (f *URLFilter) Filter(urls []string) []string {
	filtered := make([]string, 0, len(urls))

	for _, u := range urls {
		if f.Accept(u) {
			filtered = append(filtered, u)
		}
	}

	return filtered
}

// Extract normalizes a raw photos value and filters it down to
// displayable image URLs.
func (f *URLFilter) Extract(raw any) []string {
	return f.Filter(NormalizePhotos(raw))
}

// ExtractImageURLs is Extract with the default host allowlist.
func ExtractImageURLs(raw any) []string {
	filter := URLFilter{}

	return filter.Extract(raw)
}

// NormalizePhotos flattens the photos field's upstream shapes into a
// slice of URL-like strings. Accepted shapes: nil, []string, []any of
// strings, a JSON-encoded array, and a comma-joined string. A
// single-element result whose element itself contains commas is split
// again to handle doubly-encoded input.
func NormalizePhotos(raw any) []string {
	var urls []string

	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		urls = v
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				urls = append(urls, s)
			}
		}
	case string:
		if v == "" {
			return nil
		}

		if err := json.Unmarshal([]byte(v), &urls); err != nil {
			urls = splitAndTrim(v)
		}
	default:
		return nil
	}

	if len(urls) == 1 && strings.Contains(urls[0], ",") {
		urls = splitAndTrim(urls[0])
	}

	return urls
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	return parts
}
