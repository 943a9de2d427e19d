package service

import (
	"context"
	"fmt"

	"discography/internal/domain/discography"
	"discography/internal/gateway/spotify"
	"discography/internal/model"
	"discography/internal/pagination"
	"discography/internal/types"

	"go.uber.org/zap"
)

// ExtractResult итог одного запуска извлечения
type ExtractResult struct {
	Artist  types.SpotifyArtist
	Albums  []types.SpotifyAlbum
	Tracks  []model.Track
	Lookups int
	Load    LoadReport
}

// Extractor выполняет полное извлечение дискографии артиста и загрузку в хранилище.
// Все шаги последовательные, любая сетевая ошибка прерывает запуск.
type Extractor struct {
	catalog spotify.Interface
	sink    model.TrackSink
	logger  *zap.Logger
}

// NewExtractor создает сервис извлечения
func NewExtractor(catalog spotify.Interface, sink model.TrackSink, logger *zap.Logger) *Extractor {
	return &Extractor{
		catalog: catalog,
		sink:    sink,
		logger:  logger,
	}
}

// Run извлекает дискографию artistName и загружает треки в table
func (e *Extractor) Run(ctx context.Context, artistName, table string) (*ExtractResult, error) {
	if err := e.catalog.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("spotify authentication failed: %w", err)
	}

	artist, err := e.catalog.SearchArtist(ctx, artistName)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Artist found",
		zap.String("artist", artist.Name),
		zap.String("artist_id", artist.ID))

	albums, err := discography.CollectAlbums(
		pagination.Walk[types.SpotifyAlbum](ctx, e.catalog, e.catalog.ArtistAlbumsURL(artist.ID)),
	)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Total unique albums/singles found", zap.Int("albums", len(albums)))

	batcher := discography.NewTrackBatcher(e.catalog, discography.NewLogReporter(e.logger), e.logger)
	tracks, err := batcher.Collect(ctx, albums)
	if err != nil {
		return nil, err
	}
	e.logger.Info("All albums processed",
		zap.Int("unique_tracks", len(tracks)),
		zap.Int("lookups", batcher.Lookups()))

	if err := e.sink.EnsureTable(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to prepare table %s: %w", table, err)
	}

	report := LoadTracks(ctx, e.sink, table, tracks, e.logger)
	if report.Failed() {
		e.logger.Warn("Tracks loaded with failed batches",
			zap.Int("total", report.Total),
			zap.Ints("failed_batches", report.FailedBatches))
	} else {
		e.logger.Info("All tracks successfully loaded",
			zap.Int("total", report.Total),
			zap.String("table", table))
	}

	return &ExtractResult{
		Artist:  *artist,
		Albums:  albums,
		Tracks:  tracks,
		Lookups: batcher.Lookups(),
		Load:    report,
	}, nil
}
