// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"fmt"
	"sort"

	"github.com/uber/h3-go/v4"
)

// Pin is a single positioned marker fed into map clustering.
type Pin struct {
	ID    int   `json:"id"`
	Point Point `json:"point"`
}

// PinCluster groups the pins that fall into the same H3 cell at the
// requested resolution. Centroid is the mean of the member positions, not
// the cell center, so single-member clusters render exactly on the listing.
type PinCluster struct {
	Cell     string `json:"cell"`
	Centroid Point  `json:"centroid"`
	Count    int    `json:"count"`
	IDs      []int  `json:"ids"`
}

// ClusterPins buckets pins into H3 cells at the given resolution
// (0 coarsest, 15 finest). Pins with out-of-range coordinates are skipped.
func ClusterPins(pins []Pin, resolution int) ([]PinCluster, error) {
	if resolution < 0 || resolution > 15 {
		return nil, fmt.Errorf("h3 resolution out of range [0,15]: %d", resolution)
	}

	byCell := make(map[h3.Cell][]Pin)

	for _, pin := range pins {
		if !pin.Point.Valid() {
			continue
		}

		latLng := h3.NewLatLng(pin.Point.Lat, pin.Point.Lng)

		cell, err := h3.LatLngToCell(latLng, resolution)
		if err != nil {
			return nil, fmt.Errorf("converting to h3 cell at res %d: %w", resolution, err)
		}

		byCell[cell] = append(byCell[cell], pin)
	}

	clusters := make([]PinCluster, 0, len(byCell))

	for cell, members := range byCell {
		cluster := PinCluster{
			Cell:  cell.String(),
			Count: len(members),
			IDs:   make([]int, 0, len(members)),
		}

		for _, m := range members {
			cluster.Centroid.Lat += m.Point.Lat
			cluster.Centroid.Lng += m.Point.Lng
			cluster.IDs = append(cluster.IDs, m.ID)
		}

		cluster.Centroid.Lat /= float64(len(members))
		cluster.Centroid.Lng /= float64(len(members))

		sort.Ints(cluster.IDs)
		clusters = append(clusters, cluster)
	}

	// Deterministic output order for stable API responses
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Cell < clusters[j].Cell
	})

	return clusters, nil
}
