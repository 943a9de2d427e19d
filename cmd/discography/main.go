// Package main запускает извлечение дискографии артиста из Spotify в хранилище.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"discography/internal/config"
	"discography/internal/gateway/spotify"
	"discography/internal/model"
	"discography/internal/service"
	"discography/internal/storage"
	"discography/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:          "discography",
		Short:        "Extract an artist discography from Spotify into a warehouse table",
		SilenceUsage: true,
	}
	root.AddCommand(extractCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	var artist, table, output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run a full extraction of albums, singles and tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Флаги имеют приоритет над окружением
			if artist != "" {
				cfg.ArtistName = artist
			}
			if table != "" {
				cfg.WarehouseTable = table
			}
			if output != "" {
				cfg.OutputDir = output
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation failed: %w", err)
			}

			log := logger.New(logger.Options{
				Level:      cfg.LogLevel,
				LogPath:    os.Getenv("LOG_PATH"),
				AppDataDir: cfg.AppDataDir,
			})
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return run(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name to search for (overrides ARTIST_NAME)")
	cmd.Flags().StringVar(&table, "table", "", "Target table (overrides WAREHOUSE_TABLE)")
	cmd.Flags().StringVar(&output, "output", "", "Write NDJSON files to this directory instead of the database")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	client, err := spotify.NewClient(cfg.SpotifyConfig(), log)
	if err != nil {
		return err
	}

	var sink model.TrackSink
	if cfg.OutputDir != "" {
		sink = storage.NewFileSink(cfg.OutputDir, log)
		log.Info("Writing tracks to files", zap.String("dir", cfg.OutputDir))
	} else {
		db, err := storage.NewPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("Failed to connect to warehouse", zap.Error(err))
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("Failed to close database", zap.Error(err))
			}
		}()
		sink = db.GetTrackRepository()
	}

	extractor := service.NewExtractor(client, sink, log)
	result, err := extractor.Run(ctx, cfg.ArtistName, cfg.WarehouseTable)
	if err != nil {
		log.Error("Extraction failed", zap.Error(err))
		return err
	}

	log.Info("Extraction finished",
		zap.String("artist", result.Artist.Name),
		zap.Int("albums", len(result.Albums)),
		zap.Int("tracks", len(result.Tracks)),
		zap.Int("batches", result.Load.Batches),
		zap.Int("failed_batches", len(result.Load.FailedBatches)))

	return nil
}
