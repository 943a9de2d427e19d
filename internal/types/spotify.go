// Package types содержит общие типы для работы с внешними API.
package types

// Типы альбомов, которые возвращает Spotify
const (
	AlbumTypeAlbum       = "album"
	AlbumTypeSingle      = "single"
	AlbumTypeCompilation = "compilation"
	AlbumTypeAppearsOn   = "appears_on"
)

// Точность даты релиза
const (
	PrecisionYear  = "year"
	PrecisionMonth = "month"
	PrecisionDay   = "day"
)

// SpotifyAlbum представляет альбом из списка альбомов артиста
type SpotifyAlbum struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	ReleaseDate          string `json:"release_date"`
	ReleaseDatePrecision string `json:"release_date_precision"`
	AlbumType            string `json:"album_type"`
}

// SpotifyTrackRef представляет трек из списка треков альбома.
// Популярность в этом ответе отсутствует.
type SpotifyTrackRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyTrackInfo содержит полные метаданные трека из bulk-запроса
type SpotifyTrackInfo struct {
	ID         string
	Name       string
	Popularity int
}

// SpotifyArtist представляет найденного артиста
type SpotifyArtist struct {
	ID   string
	Name string
}
