// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wareongo/wareongo/warehouse"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "wareongo",
	Short: "warehouse-space marketplace tooling",
	Long: `
wareongo serves the marketplace website's backend-for-frontend and gives
programmatic access to the warehouse listing API: browsing listings,
resolving their map coordinates, and submitting leads.
`,
}

var (
	apiBaseURL string
	httpTrace  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", warehouse.DefaultBaseURL, "listing API base URL")
	rootCmd.PersistentFlags().BoolVar(&httpTrace, "http-trace", false, "trace HTTP requests to stderr")
}

// newWarehouseClient builds the listing client from the global flags.
func newWarehouseClient() *warehouse.Client {
	return warehouse.NewClient(&warehouse.ClientOptions{
		BaseURL:         apiBaseURL,
		UserAgent:       "wareongo/" + Version,
		AdminToken:      os.Getenv("WAREONGO_ADMIN_TOKEN"),
		EnableHTTPTrace: httpTrace,
	})
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
