// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package warehouse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func TestToCard(t *testing.T) {
	w := &Warehouse{
		ID:                  7,
		Address:             "Plot 12, MIDC Industrial Area",
		City:                "Pune",
		State:               "Maharashtra",
		TotalSpaceSqft:      []int{12000, 8000},
		ClearHeightFt:       strptr("24 ft"),
		Compliances:         "Fire NOC, CLU",
		OtherSpecifications: strptr("Dock levelers, 24x7 security, Power backup"),
		RatePerSqft:         "₹28/sqft",
		Photos:              PhotoList{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		FireNocAvailable:    boolptr(true),
	}

	got := ToCard(w)

	want := Card{
		ID:             7,
		Image:          "https://cdn.example.com/a.jpg",
		Address:        "Plot 12, MIDC Industrial Area",
		City:           "Pune",
		State:          "Maharashtra",
		SizeSqft:       12000,
		CeilingHeight:  24,
		PricePerSqft:   28,
		FireCompliance: true,
		Features: []string{
			"Compliances: Fire NOC, CLU",
			"Dock levelers",
			"24x7 security",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToCard() mismatch (-want +got):\n%s", diff)
	}
}

func TestToCardDefaults(t *testing.T) {
	w := &Warehouse{
		ID:      8,
		Address: "NH-44",
		City:    "Hyderabad",
		State:   "Telangana",
	}

	got := ToCard(w)

	if got.CeilingHeight != defaultCeilingHeightFt {
		t.Errorf("CeilingHeight = %d, want default %d", got.CeilingHeight, defaultCeilingHeightFt)
	}

	if got.PricePerSqft != defaultPricePerSqft {
		t.Errorf("PricePerSqft = %d, want default %d", got.PricePerSqft, defaultPricePerSqft)
	}

	if got.Image != "" {
		t.Errorf("Image = %q, want empty for a photo-less listing", got.Image)
	}

	if got.SizeSqft != 0 {
		t.Errorf("SizeSqft = %d, want 0", got.SizeSqft)
	}

	if diff := cmp.Diff(defaultFeatures, got.Features); diff != "" {
		t.Errorf("Features mismatch (-want +got):\n%s", diff)
	}
}

func TestToCardSkipsNonImagePhoto(t *testing.T) {
	w := &Warehouse{
		ID:     9,
		Photos: PhotoList{"https://cdn.example.com/brochure.pdf", "https://cdn.example.com/front.jpg"},
	}

	if got := ToCard(w); got.Image != "https://cdn.example.com/front.jpg" {
		t.Errorf("Image = %q, want the first displayable photo", got.Image)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback int
		want     int
	}{
		{
			name:     "plain number",
			input:    "28",
			fallback: 35,
			want:     28,
		},
		{
			name:     "feet suffix",
			input:    "24 ft",
			fallback: 10,
			want:     24,
		},
		{
			name:     "currency prefix",
			input:    "₹35/sqft",
			fallback: 10,
			want:     35,
		},
		{
			name:     "empty falls back",
			input:    "",
			fallback: 10,
			want:     10,
		},
		{
			name:     "no digits falls back",
			input:    "negotiable",
			fallback: 35,
			want:     35,
		},
		{
			name:     "zero falls back",
			input:    "0",
			fallback: 35,
			want:     35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLeadingInt(tt.input, tt.fallback); got != tt.want {
				t.Errorf("parseLeadingInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
