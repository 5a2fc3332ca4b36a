// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/wareongo/wareongo/geocode"
	"github.com/wareongo/wareongo/utils/strutils"
	"github.com/wareongo/wareongo/warehouse"
)

var geocodeOptions struct {
	postalCode string
	state      string
	country    string
}

func newGeocoder() *geocode.Client {
	return geocode.NewClient(&geocode.ClientOptions{
		UserAgent:       "wareongo/" + Version + " (warehouse location map)",
		EnableHTTPTrace: httpTrace,
	})
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode <city>",
	Short: "Resolve a location to map coordinates",
	Long: `Resolves a city/state/postal-code tuple to coordinates using the tiered
fallback chain. The accuracy tier of the answer reflects the first
strategy that matched: postal, city, state, or approximate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		geocoder := newGeocoder()

		result, err := geocoder.Resolve(cmd.Context(), geocode.Query{
			PostalCode: geocodeOptions.postalCode,
			City:       args[0],
			State:      geocodeOptions.state,
			Country:    geocodeOptions.country,
		})
		if err != nil {
			return fmt.Errorf("resolving location: %w", err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}

		fmt.Println(string(out))

		return nil
	},
}

var geocodeBatchPages int

var geocodeBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Geocode every listed warehouse and report accuracy tiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := newWarehouseClient()
		geocoder := newGeocoder()

		var listings []warehouse.Warehouse

		for page := 1; page <= geocodeBatchPages; page++ {
			resp, err := client.List(cmd.Context(), warehouse.Filter{Page: page, PageSize: 50})
			if err != nil {
				return fmt.Errorf("listing warehouses page %d: %w", page, err)
			}

			listings = append(listings, resp.Data...)

			if page >= resp.Pagination.TotalPages {
				break
			}
		}

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(len(listings),
				progressbar.OptionSetDescription("Geocoding listings"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		byTier := make(map[geocode.Accuracy]int)
		failed := 0

		for i := range listings {
			w := &listings[i]

			result, err := geocoder.Resolve(cmd.Context(), geocode.Query{
				PostalCode: w.PostalCode,
				City:       w.City,
				State:      w.State,
			})
			if err != nil {
				failed++

				log.Printf("warehouse %d (%s, %s): %v", w.ID, w.City, w.State, err)
			} else {
				byTier[result.Accuracy]++
			}

			if bar != nil {
				_ = bar.Add(1)
			}
		}

		var tiers []string
		for _, tier := range []geocode.Accuracy{geocode.AccuracyPostal, geocode.AccuracyCity, geocode.AccuracyState, geocode.AccuracyApproximate} {
			tiers = append(tiers, fmt.Sprintf("%s=%d", tier, byTier[tier]))
		}

		fmt.Printf("✅ Geocoded %s listings (%s), %d failed\n",
			strutils.FormatInt(int64(len(listings)-failed)),
			strings.Join(tiers, " "),
			failed)

		return nil
	},
}

func init() {
	geocodeCmd.Flags().StringVar(&geocodeOptions.postalCode, "postal", "", "postal code, improves accuracy when known")
	geocodeCmd.Flags().StringVar(&geocodeOptions.state, "state", "", "state the city belongs to")
	geocodeCmd.Flags().StringVar(&geocodeOptions.country, "country", geocode.DefaultCountry, "country")
	_ = geocodeCmd.MarkFlagRequired("state")

	geocodeBatchCmd.Flags().IntVar(&geocodeBatchPages, "pages", 1, "maximum listing pages to fetch")

	geocodeCmd.AddCommand(geocodeBatchCmd)
	rootCmd.AddCommand(geocodeCmd)
}
