// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wareongo/wareongo/geocode"
	"github.com/wareongo/wareongo/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website backend-for-frontend",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		adminToken := os.Getenv("WAREONGO_ADMIN_TOKEN")
		if adminToken == "" {
			fmt.Println("WAREONGO_ADMIN_TOKEN is not set. Admin endpoints are disabled.")
		}

		geocoder := geocode.NewClient(&geocode.ClientOptions{
			UserAgent:       "wareongo/" + Version + " (warehouse location map)",
			EnableHTTPTrace: httpTrace,
		})

		srv := server.NewServer(newWarehouseClient(), geocoder, &server.Options{
			Addr:       serveAddr,
			AdminToken: adminToken,
		})

		fmt.Printf("🏭 WareOnGo server starting on http://%s\n", serveAddr)

		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}
