// Package discography содержит извлечение дискографии артиста:
// дедупликацию альбомов, пакетное обогащение треков и нормализацию дат.
package discography

import (
	"fmt"
	"iter"
	"strings"

	"discography/internal/types"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeAlbumName приводит название альбома к ключу дедупликации:
// нижний регистр, без текста начиная с первой "(", без пробелов по краям.
func NormalizeAlbumName(name string) string {
	normalized := cases.Lower(language.Und).String(name)
	if i := strings.Index(normalized, "("); i >= 0 {
		normalized = normalized[:i]
	}
	return strings.TrimSpace(normalized)
}

// IsCollectedAlbumType сообщает, учитывается ли тип альбома
func IsCollectedAlbumType(albumType string) bool {
	return albumType == types.AlbumTypeAlbum || albumType == types.AlbumTypeSingle
}

// AlbumDeduplicator отбирает уникальные альбомы по нормализованному названию,
// сохраняя порядок первого появления.
type AlbumDeduplicator struct {
	seen   map[string]struct{}
	albums []types.SpotifyAlbum
}

// NewAlbumDeduplicator создает пустой дедупликатор
func NewAlbumDeduplicator() *AlbumDeduplicator {
	return &AlbumDeduplicator{seen: make(map[string]struct{})}
}

// Add добавляет альбом и возвращает true, если он попал в результат
func (d *AlbumDeduplicator) Add(album types.SpotifyAlbum) bool {
	if !IsCollectedAlbumType(album.AlbumType) {
		return false
	}

	key := NormalizeAlbumName(album.Name)
	if _, ok := d.seen[key]; ok {
		return false
	}

	d.seen[key] = struct{}{}
	d.albums = append(d.albums, album)
	return true
}

// Albums возвращает уникальные альбомы в порядке появления
func (d *AlbumDeduplicator) Albums() []types.SpotifyAlbum {
	return d.albums
}

// CollectAlbums проходит всю последовательность страниц и возвращает уникальные альбомы
func CollectAlbums(pages iter.Seq2[[]types.SpotifyAlbum, error]) ([]types.SpotifyAlbum, error) {
	dedup := NewAlbumDeduplicator()
	for batch, err := range pages {
		if err != nil {
			return nil, fmt.Errorf("failed to list albums: %w", err)
		}
		for _, album := range batch {
			dedup.Add(album)
		}
	}
	return dedup.Albums(), nil
}
