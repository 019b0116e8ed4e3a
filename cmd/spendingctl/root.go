package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/milad/energyusage/internal/config"
	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/logger"
	"github.com/milad/energyusage/internal/report"
	"github.com/milad/energyusage/internal/repo/sqliterepo"
	"github.com/milad/energyusage/internal/service"
)

var (
	cfgFile    string
	dbPath     string
	jsonOutput bool
	serverAddr string
)

var rootCmd = &cobra.Command{
	Use:   "spendingctl",
	Short: "Record meter readings and query energy spending",
	Long: `spendingctl stores cumulative meter readings in a local SQLite database and
answers spending questions over them: prorated totals for arbitrary windows,
daily, weekly and monthly averages, and period totals.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $ENERGYUSAGE_CONFIG or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides database.path)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "", "query a running spendingd at this gRPC address instead of the local database")
}

func loadConfig() (config.Config, error) {
	return config.Load(config.Path(cfgFile))
}

// openRepo opens the reading store, creating its directory if needed.
func openRepo(cfg config.Config) (*sqliterepo.Repo, error) {
	path := cfg.Database.Path
	if dbPath != "" {
		path = dbPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	return sqliterepo.Open(path, sqliterepo.Options{BusyTimeout: cfg.Database.BusyTimeout()})
}

// withService runs fn against a spending service backed by the local store.
func withService(fn func(*service.SpendingService) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	lg, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	repo, err := openRepo(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer repo.Close()

	return fn(service.NewSpendingService(repo, service.WithLogger(lg.Named("cli"))))
}

// parseTime accepts RFC3339 (with optional fractional seconds) or a bare
// YYYY-MM-DD date at UTC midnight.
func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339 or YYYY-MM-DD", v)
	}
	return t, nil
}

func parseOptionalTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func printSpending(w io.Writer, s domain.Spending) error {
	v := report.NewSpendingView(s)
	if jsonOutput {
		return writeJSON(w, v)
	}
	_, err := fmt.Fprintf(w, "%s  ->  %s  %12s\n", v.StartDate, v.EndDate, v.Usage)
	return err
}

func printPeriods(w io.Writer, title string, list []domain.Spending) error {
	views := report.NewSpendingViews(list)
	if jsonOutput {
		return writeJSON(w, views)
	}
	if len(views) == 0 {
		_, err := fmt.Fprintf(w, "No complete %s periods\n", title)
		return err
	}
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, "----------------------------------------------------------")
	fmt.Fprintf(w, "%-19s     %-19s  %12s\n", "Start", "End", "Usage")
	fmt.Fprintln(w, "----------------------------------------------------------")
	for _, v := range views {
		fmt.Fprintf(w, "%-19s  -> %-19s  %12s\n", v.StartDate, v.EndDate, v.Usage)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
