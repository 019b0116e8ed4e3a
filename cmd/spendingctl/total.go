package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/milad/energyusage/internal/service"
)

var (
	totalFrom string
	totalTo   string
)

var totalCmd = &cobra.Command{
	Use:       "total weekly|monthly",
	Short:     "Show total usage by week or calendar month",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"weekly", "monthly"},
	RunE:      runTotal,
}

func init() {
	totalCmd.Flags().StringVar(&totalFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD)")
	totalCmd.Flags().StringVar(&totalTo, "to", "", "window end (RFC3339 or YYYY-MM-DD)")
	rootCmd.AddCommand(totalCmd)
}

func runTotal(cmd *cobra.Command, args []string) error {
	period, err := service.ParsePeriod(args[0])
	if err != nil {
		return err
	}
	pq := service.PeriodQuery{Period: period}
	if pq.Start, err = parseOptionalTime(totalFrom); err != nil {
		return err
	}
	if pq.End, err = parseOptionalTime(totalTo); err != nil {
		return err
	}

	return withQuerier(func(q querier) error {
		list, err := q.Totals(context.Background(), pq)
		if err != nil {
			return err
		}
		return printPeriods(cmd.OutOrStdout(), string(period)+" totals", list)
	})
}
