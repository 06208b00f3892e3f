package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var creditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Review outstanding customer credit",
}

var creditCustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "List customers carrying an outstanding balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newSalesClient()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		customers, err := client.ListCreditCustomers(ctx)
		if err != nil {
			return err
		}
		if len(customers) == 0 {
			fmt.Println("No outstanding credit.")
			return nil
		}

		fmt.Printf("%-38s %-24s %12s %12s %8s\n", "ID", "NAME", "BALANCE", "LIMIT", "PENDING")
		for _, cust := range customers {
			fmt.Printf("%-38s %-24s %12s %12s %8d\n",
				cust.ID, cust.Name, cust.CurrentBalance.StringFixed(2), cust.CreditLimit.StringFixed(2), cust.PendingSalesCount)
		}
		return nil
	},
}

var creditPendingCmd = &cobra.Command{
	Use:   "pending <customer-id>",
	Short: "List a customer's outstanding sales, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid customer id: %w", err)
		}

		client := newSalesClient()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		sales, err := client.ListPendingCreditSales(ctx, customerID)
		if err != nil {
			return err
		}
		if len(sales) == 0 {
			fmt.Println("No pending sales.")
			return nil
		}

		fmt.Printf("%-16s %12s %12s %-10s %s\n", "INVOICE", "TOTAL", "DUE", "STATUS", "CREATED")
		for _, sale := range sales {
			fmt.Printf("%-16s %12s %12s %-10s %s\n",
				sale.InvoiceNumber, sale.GrandTotal.StringFixed(2), sale.BalanceDue.StringFixed(2),
				sale.PaymentStatus, sale.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	creditCmd.AddCommand(creditCustomersCmd)
	creditCmd.AddCommand(creditPendingCmd)
	rootCmd.AddCommand(creditCmd)
}
