package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reconcileTimeout time.Duration

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute every customer's credit balance from their sales",
	Long: `Recompute each customer's current balance strictly as the sum of
balance due across their sales, discarding any drifted stored value.

The operation is idempotent: running it twice in a row converges to
the same balances, so it is safe to trigger manually even while the
nightly schedule is active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newSalesClient()

		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		updated, err := client.ReconcileCustomerBalances(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Reconciliation complete: %d customer balance(s) corrected\n", updated)
		return nil
	},
}

func init() {
	reconcileCmd.Flags().DurationVar(&reconcileTimeout, "timeout", 5*time.Minute, "maximum time to wait for reconciliation")
	rootCmd.AddCommand(reconcileCmd)
}
