// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wareongo/wareongo/utils/strutils"
	"github.com/wareongo/wareongo/warehouse"
)

var warehousesCmd = &cobra.Command{
	Use:   "warehouses",
	Short: "Browse warehouse listings",
}

var listOptions struct {
	city     string
	state    string
	page     int
	pageSize int
}

var warehousesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List warehouse listings as cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resp, err := newWarehouseClient().List(cmd.Context(), warehouse.Filter{
			Page:     listOptions.page,
			PageSize: listOptions.pageSize,
			City:     listOptions.city,
			State:    listOptions.state,
		})
		if err != nil {
			return fmt.Errorf("listing warehouses: %w", err)
		}

		for i := range resp.Data {
			card := warehouse.ToCard(&resp.Data[i])
			fmt.Printf("%6d  %-20s %-15s %10s sqft  ₹%d/sqft\n",
				card.ID, card.City, card.State,
				strutils.FormatInt(int64(card.SizeSqft)), card.PricePerSqft)
		}

		fmt.Printf("page %d of %d (%s listings)\n",
			resp.Pagination.CurrentPage,
			resp.Pagination.TotalPages,
			strutils.FormatInt(int64(resp.Pagination.TotalItems)))

		return nil
	},
}

var warehousesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one listing in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid warehouse id %q", args[0])
		}

		w, err := newWarehouseClient().Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching warehouse %d: %w", id, err)
		}

		out, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling warehouse: %w", err)
		}

		fmt.Println(string(out))

		return nil
	},
}

func init() {
	warehousesListCmd.Flags().StringVar(&listOptions.city, "city", "", "filter by city")
	warehousesListCmd.Flags().StringVar(&listOptions.state, "state", "", "filter by state")
	warehousesListCmd.Flags().IntVar(&listOptions.page, "page", 1, "page to fetch")
	warehousesListCmd.Flags().IntVar(&listOptions.pageSize, "page-size", 20, "listings per page")

	warehousesCmd.AddCommand(warehousesListCmd)
	warehousesCmd.AddCommand(warehousesGetCmd)
	rootCmd.AddCommand(warehousesCmd)
}
