package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/report"
)

var (
	readingAt    string
	readingValue string
	readingsFrom string
	readingsTo   string
)

var readingsCmd = &cobra.Command{
	Use:   "readings",
	Short: "Manage stored meter readings",
}

var readingsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store one cumulative meter reading",
	Long:  `Stores a reading. A reading with the same instant and value as an existing one is ignored.`,
	RunE:  runReadingsAdd,
}

var readingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored readings",
	RunE:  runReadingsList,
}

func init() {
	readingsAddCmd.Flags().StringVar(&readingAt, "at", "", "reading instant (RFC3339 or YYYY-MM-DD)")
	readingsAddCmd.Flags().StringVar(&readingValue, "value", "", "cumulative meter value")
	_ = readingsAddCmd.MarkFlagRequired("at")
	_ = readingsAddCmd.MarkFlagRequired("value")

	readingsListCmd.Flags().StringVar(&readingsFrom, "from", "", "only readings at or after this instant")
	readingsListCmd.Flags().StringVar(&readingsTo, "to", "", "only readings before this instant")

	readingsCmd.AddCommand(readingsAddCmd, readingsListCmd)
	rootCmd.AddCommand(readingsCmd)
}

func runReadingsAdd(cmd *cobra.Command, args []string) error {
	at, err := parseTime(readingAt)
	if err != nil {
		return err
	}
	value, err := domain.NewDecimal(readingValue)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	repo, err := openRepo(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer repo.Close()

	n, err := repo.Add(context.Background(), domain.Reading{Time: at, Value: value})
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Reading already stored")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored reading %s at %s\n", value, report.FormatInstant(at))
	return nil
}

func runReadingsList(cmd *cobra.Command, args []string) error {
	from, err := parseOptionalTime(readingsFrom)
	if err != nil {
		return err
	}
	to, err := parseOptionalTime(readingsTo)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	repo, err := openRepo(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer repo.Close()

	ctx := context.Background()
	readings, err := repo.List(ctx, from, to)
	if err != nil {
		return err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		type row struct {
			Time  string         `json:"time"`
			Value domain.Decimal `json:"value"`
		}
		rows := make([]row, 0, len(readings))
		for _, r := range readings {
			rows = append(rows, row{Time: report.FormatInstant(r.Time), Value: r.Value})
		}
		return writeJSON(w, rows)
	}

	if len(readings) == 0 {
		fmt.Fprintln(w, "No readings found")
		return nil
	}
	fmt.Fprintf(w, "%-19s  %14s\n", "Time", "Value")
	fmt.Fprintln(w, "-----------------------------------")
	for _, r := range readings {
		fmt.Fprintf(w, "%-19s  %14s\n", report.FormatInstant(r.Time), r.Value)
	}
	fmt.Fprintln(w, "-----------------------------------")
	fmt.Fprintf(w, "%s shown, %s stored\n",
		humanize.Comma(int64(len(readings))), humanize.Comma(int64(total)))
	return nil
}
