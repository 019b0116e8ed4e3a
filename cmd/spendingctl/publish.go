package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/milad/energyusage/internal/logger"
	"github.com/milad/energyusage/internal/publisher"
	"github.com/milad/energyusage/internal/service"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a spending summary to MQTT once",
	Long: `Builds the all-time spending and the configured period averages and
publishes them to the MQTT broker from the config file.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
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

	pub, err := publisher.Connect(cfg.MQTT, lg)
	if err != nil {
		return err
	}
	defer pub.Close()

	ctx := context.Background()
	svc := service.NewSpendingService(repo, service.WithLogger(lg.Named("cli")))
	summary, err := publisher.BuildSummary(ctx, svc, cfg.Publish.Periods, time.Now())
	if err != nil {
		return err
	}
	if err := pub.PublishSummary(ctx, summary); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published summary to %s/*\n", cfg.MQTT.TopicPrefix)
	return nil
}
