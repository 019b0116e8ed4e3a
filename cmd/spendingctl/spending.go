package main

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	spendingFrom string
	spendingTo   string
)

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Show prorated usage for a window",
	Long: `Shows the usage accrued between --from and --to. Either bound may be
omitted to extend the window to the edge of the recorded history.`,
	RunE: runSpending,
}

func init() {
	spendingCmd.Flags().StringVar(&spendingFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD)")
	spendingCmd.Flags().StringVar(&spendingTo, "to", "", "window end (RFC3339 or YYYY-MM-DD)")
	rootCmd.AddCommand(spendingCmd)
}

func runSpending(cmd *cobra.Command, args []string) error {
	from, err := parseOptionalTime(spendingFrom)
	if err != nil {
		return err
	}
	to, err := parseOptionalTime(spendingTo)
	if err != nil {
		return err
	}

	return withQuerier(func(q querier) error {
		res, err := q.Spending(context.Background(), from, to)
		if err != nil {
			return err
		}
		return printSpending(cmd.OutOrStdout(), res)
	})
}
