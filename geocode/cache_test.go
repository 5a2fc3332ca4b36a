// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"testing"
	"time"

	"github.com/wareongo/wareongo/spatial"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "all fields",
			query: Query{PostalCode: "400001", City: "Mumbai", State: "Maharashtra", Country: "India"},
			want:  "400001|mumbai|maharashtra|india",
		},
		{
			name:  "missing postal code uses sentinel",
			query: Query{City: "Mumbai", State: "Maharashtra", Country: "India"},
			want:  "none|mumbai|maharashtra|india",
		},
		{
			name:  "case and whitespace folded",
			query: Query{PostalCode: "400001", City: " MUMBAI ", State: "Maharashtra", Country: "INDIA"},
			want:  "400001|mumbai|maharashtra|india",
		},
		{
			name:  "accents folded",
			query: Query{City: "Pondichéry", State: "Puducherry", Country: "India"},
			want:  "none|pondichery|puducherry|india",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheKey(tt.query); got != tt.want {
				t.Errorf("cacheKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResultCacheTTL(t *testing.T) {
	cache := newResultCache(time.Hour)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	result := &Result{
		Point:    spatial.Point{Lat: 19.076, Lng: 72.8777},
		Accuracy: AccuracyCity,
	}

	cache.put("k", result, now)

	if got, ok := cache.get("k", now.Add(59*time.Minute)); !ok || got != result {
		t.Errorf("get() within TTL = %v, %v; want cached result", got, ok)
	}

	if _, ok := cache.get("k", now.Add(61*time.Minute)); ok {
		t.Error("get() after TTL should miss")
	}

	if cache.size() != 0 {
		t.Errorf("size() after expired get = %d, want 0", cache.size())
	}
}

func TestResultCachePutEvictsExpired(t *testing.T) {
	cache := newResultCache(time.Hour)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cache.put("old", &Result{}, now)
	cache.put("new", &Result{}, now.Add(2*time.Hour))

	if cache.size() != 1 {
		t.Errorf("size() = %d, want 1 after write-time cleanup", cache.size())
	}

	if _, ok := cache.get("new", now.Add(2*time.Hour)); !ok {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestResultCacheClear(t *testing.T) {
	cache := newResultCache(time.Hour)
	now := time.Now()

	cache.put("a", &Result{}, now)
	cache.put("b", &Result{}, now)
	cache.clear()

	if cache.size() != 0 {
		t.Errorf("size() after clear = %d, want 0", cache.size())
	}
}
