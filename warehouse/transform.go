// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package warehouse

import (
	"strconv"
	"strings"
)

// Card is the listing shape the card grid renders: one image, one size,
// flat numbers with defaults where the backend left holes.
type Card struct {
	ID             int      `json:"id"`
	Image          string   `json:"image,omitempty"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	SizeSqft       int      `json:"sizeSqft"`
	CeilingHeight  int      `json:"ceilingHeightFt"`
	PricePerSqft   int      `json:"pricePerSqft"`
	FireCompliance bool     `json:"fireCompliance"`
	Features       []string `json:"features"`
}

const (
	defaultCeilingHeightFt = 10
	defaultPricePerSqft    = 35
	maxCardFeatures        = 3
)

var defaultFeatures = []string{
	"Modern warehouse facility",
	"Professional storage solutions",
	"Strategic location",
}

// ToCard flattens a listing for the card grid. A listing with no
// displayable photo gets an empty Image; the renderer shows a
// placeholder.
func ToCard(w *Warehouse) Card {
	card := Card{
		ID:            w.ID,
		Address:       w.Address,
		City:          w.City,
		State:         w.State,
		CeilingHeight: parseLeadingInt(deref(w.ClearHeightFt), defaultCeilingHeightFt),
		PricePerSqft:  parseLeadingInt(w.RatePerSqft, defaultPricePerSqft),
		Features:      cardFeatures(w),
	}

	if len(w.TotalSpaceSqft) > 0 {
		card.SizeSqft = w.TotalSpaceSqft[0]
	}

	if w.FireNocAvailable != nil {
		card.FireCompliance = *w.FireNocAvailable
	}

	if images := w.Photos.ImageURLs(); len(images) > 0 {
		card.Image = images[0]
	}

	return card
}

// cardFeatures builds the bullet list: compliances first, then the
// comma-separated other specifications, capped at three.
func cardFeatures(w *Warehouse) []string {
	var features []string

	if c := strings.TrimSpace(w.Compliances); c != "" {
		features = append(features, "Compliances: "+c)
	}

	for _, f := range strings.Split(deref(w.OtherSpecifications), ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	if len(features) == 0 {
		features = append(features, defaultFeatures...)
	}

	if len(features) > maxCardFeatures {
		features = features[:maxCardFeatures]
	}

	return features
}

// parseLeadingInt extracts the digits from free-text numeric columns like
// "24 ft" or "₹35/sqft", falling back to a default.
func parseLeadingInt(s string, fallback int) int {
	var digits strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return fallback
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil || n == 0 {
		return fallback
	}

	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
