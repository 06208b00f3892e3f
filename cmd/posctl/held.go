package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var heldCmd = &cobra.Command{
	Use:   "held",
	Short: "Inspect and manage held orders",
}

var heldListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all currently held orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newSalesClient()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		orders, err := client.ListHeldSales(ctx)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No held orders.")
			return nil
		}

		fmt.Printf("%-38s %-16s %-24s %10s  %s\n", "ID", "INVOICE", "CUSTOMER", "TOTAL", "REASON")
		for _, o := range orders {
			customer := o.CustomerName
			if customer == "" {
				customer = "-"
			}
			fmt.Printf("%-38s %-16s %-24s %10s  %s\n",
				o.ID, o.InvoiceNumber, customer, o.GrandTotal.StringFixed(2), o.HoldReason)
		}
		return nil
	},
}

var heldDeleteCmd = &cobra.Command{
	Use:   "delete <held-order-id>",
	Short: "Permanently delete a held order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		holdID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid held order id: %w", err)
		}

		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("deleting a held order is irreversible; re-run with --yes to confirm")
		}

		client := newSalesClient()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.DeleteHeldSale(ctx, holdID); err != nil {
			return err
		}
		fmt.Printf("Held order %s deleted\n", holdID)
		return nil
	},
}

func init() {
	heldDeleteCmd.Flags().Bool("yes", false, "confirm the irreversible delete")
	heldCmd.AddCommand(heldListCmd)
	heldCmd.AddCommand(heldDeleteCmd)
	rootCmd.AddCommand(heldCmd)
}
