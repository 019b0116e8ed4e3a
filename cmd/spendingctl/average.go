package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milad/energyusage/internal/service"
)

var (
	averageFrom string
	averageTo   string
	averageDays int
)

var averageCmd = &cobra.Command{
	Use:       "average daily|weekly|monthly|gap",
	Short:     "Show per-day average usage by period",
	Long:      `Splits the window (or the whole history) into periods and prints the per-day average of each.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"daily", "weekly", "monthly", "gap"},
	RunE:      runAverage,
}

func init() {
	averageCmd.Flags().StringVar(&averageFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD)")
	averageCmd.Flags().StringVar(&averageTo, "to", "", "window end (RFC3339 or YYYY-MM-DD)")
	averageCmd.Flags().IntVar(&averageDays, "days", 0, "period length in days (gap only)")
	rootCmd.AddCommand(averageCmd)
}

func runAverage(cmd *cobra.Command, args []string) error {
	period, err := service.ParsePeriod(args[0])
	if err != nil {
		return err
	}
	if period == service.PeriodGap && averageDays <= 0 {
		return fmt.Errorf("--days must be positive for gap averages")
	}
	pq := service.PeriodQuery{Period: period, GapDays: averageDays}
	if pq.Start, err = parseOptionalTime(averageFrom); err != nil {
		return err
	}
	if pq.End, err = parseOptionalTime(averageTo); err != nil {
		return err
	}

	return withQuerier(func(q querier) error {
		list, err := q.Averages(context.Background(), pq)
		if err != nil {
			return err
		}
		return printPeriods(cmd.OutOrStdout(), string(period)+" averages", list)
	})
}
