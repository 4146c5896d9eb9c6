package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/configs"
	"listing-service/internal/datasetimport"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		opts     datasetimport.Options
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "dataset-import",
		Short: "Import the listing dataset into PostgreSQL",
		Long: `Loads a dataset JSON document (file or http(s) URL), validates it against
the embedded schema and replaces the properties, agents and services tables.`,
		Example: `  dataset-import --source data/properties.json --database-url postgres://localhost/listings
  dataset-import --source https://example.com/properties.json --dry-run`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.DryRun && opts.DatabaseURL == "" {
				return fmt.Errorf("--database-url (or DATABASE_URL) is required unless --dry-run is set")
			}

			logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
				Level:    configs.ParseLogLevel(logLevel),
				UseColor: true,
			})

			_, err := datasetimport.Run(cmd.Context(), opts, logger)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Location, "source", "s", envOr("DATASET_PATH", "data/properties.json"),
		"dataset file path or http(s) URL")
	cmd.Flags().StringVar(&opts.DatabaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate the dataset without writing to the database")
	cmd.Flags().StringVar(&logLevel, "log-level", envOr("STDOUT_LOG_LEVEL", "info"), "log level")

	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// .env необязателен, как и у сервиса
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Printf("dataset-import failed: %v", err)
		stop()
		os.Exit(1)
	}
}
