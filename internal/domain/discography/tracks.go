package discography

import (
	"context"
	"fmt"
	"strings"

	"discography/internal/model"
	"discography/internal/pagination"
	"discography/internal/types"

	"go.uber.org/zap"
)

// LookupBatchSize жесткий лимит Spotify на количество ID в одном bulk-запросе треков
const LookupBatchSize = 50

// Catalog определяет операции каталога, нужные для сбора треков
type Catalog interface {
	pagination.Fetcher

	// AlbumTracksURL возвращает URL первой страницы треков альбома
	AlbumTracksURL(albumID string) string

	// LookupTracks возвращает полные метаданные не более чем для 50 треков
	LookupTracks(ctx context.Context, ids []string) ([]types.SpotifyTrackInfo, error)
}

// Reporter получает прогресс по альбомам
type Reporter interface {
	AlbumStarted(index, total int, name string)
	AlbumFinished(index, total, processed, collected int)
}

// TrackBatcher собирает уникальные треки альбомов и обогащает их пачками по 50 ID.
// Множество увиденных ID общее для всех альбомов одного сборщика.
type TrackBatcher struct {
	catalog  Catalog
	reporter Reporter
	logger   *zap.Logger

	seen    map[string]struct{}
	pending []string
	tracks  []model.Track
	lookups int
}

// NewTrackBatcher создает сборщик треков
func NewTrackBatcher(catalog Catalog, reporter Reporter, logger *zap.Logger) *TrackBatcher {
	return &TrackBatcher{
		catalog:  catalog,
		reporter: reporter,
		logger:   logger,
		seen:     make(map[string]struct{}),
		pending:  make([]string, 0, LookupBatchSize),
	}
}

// Collect обходит альбомы по порядку и возвращает все собранные треки
func (b *TrackBatcher) Collect(ctx context.Context, albums []types.SpotifyAlbum) ([]model.Track, error) {
	total := len(albums)
	for i, album := range albums {
		if err := b.collectAlbum(ctx, i+1, total, album); err != nil {
			return nil, err
		}
	}
	return b.tracks, nil
}

// Tracks возвращает собранные на данный момент треки
func (b *TrackBatcher) Tracks() []model.Track {
	return b.tracks
}

// Lookups возвращает количество выполненных bulk-запросов
func (b *TrackBatcher) Lookups() int {
	return b.lookups
}

func (b *TrackBatcher) collectAlbum(ctx context.Context, index, total int, album types.SpotifyAlbum) error {
	b.reporter.AlbumStarted(index, total, album.Name)

	releaseDate := NormalizeReleaseDate(album.ReleaseDate, album.ReleaseDatePrecision)
	processed := 0

	for batch, err := range pagination.Walk[types.SpotifyTrackRef](ctx, b.catalog, b.catalog.AlbumTracksURL(album.ID)) {
		if err != nil {
			return fmt.Errorf("failed to list tracks of album %s: %w", album.ID, err)
		}

		for _, ref := range batch {
			if _, ok := b.seen[ref.ID]; ok {
				continue
			}
			b.seen[ref.ID] = struct{}{}
			b.pending = append(b.pending, ref.ID)
			processed++

			if len(b.pending) == LookupBatchSize {
				if err := b.flush(ctx, album.Name, releaseDate); err != nil {
					return err
				}
			}
		}
	}

	// Остаток пачки альбома
	if len(b.pending) > 0 {
		if err := b.flush(ctx, album.Name, releaseDate); err != nil {
			return err
		}
	}

	b.reporter.AlbumFinished(index, total, processed, len(b.tracks))
	return nil
}

func (b *TrackBatcher) flush(ctx context.Context, albumName, releaseDate string) error {
	b.logger.Debug("Looking up track batch",
		zap.String("album", albumName),
		zap.Int("ids", len(b.pending)))

	infos, err := b.catalog.LookupTracks(ctx, b.pending)
	b.lookups++
	if err != nil {
		return fmt.Errorf("failed to look up tracks %s: %w", strings.Join(b.pending, ","), err)
	}

	for _, info := range infos {
		b.tracks = append(b.tracks, model.Track{
			ID:          info.ID,
			Name:        info.Name,
			Popularity:  info.Popularity,
			ReleaseDate: releaseDate,
			AlbumName:   albumName,
		})
	}

	b.pending = make([]string, 0, LookupBatchSize)
	return nil
}
