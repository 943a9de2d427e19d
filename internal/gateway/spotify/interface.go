// Package spotify реализует интерфейсы для работы с Spotify Web API.
package spotify

import (
	"context"

	"discography/internal/pagination"
	"discography/internal/types"
)

// Interface определяет интерфейс для работы с Spotify API
type Interface interface {
	pagination.Fetcher

	// Authenticate получает токен по client credentials
	Authenticate(ctx context.Context) error

	// SearchArtist ищет артиста по имени и возвращает первое совпадение
	SearchArtist(ctx context.Context, name string) (*types.SpotifyArtist, error)

	// LookupTracks возвращает полные метаданные не более чем для 50 треков
	LookupTracks(ctx context.Context, ids []string) ([]types.SpotifyTrackInfo, error)

	// ArtistAlbumsURL возвращает URL первой страницы альбомов артиста
	ArtistAlbumsURL(artistID string) string

	// AlbumTracksURL возвращает URL первой страницы треков альбома
	AlbumTracksURL(albumID string) string
}
