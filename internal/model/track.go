// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Track, TrackSink
package model

import (
	"context"

	"github.com/uptrace/bun"
)

// DefaultTrackTable таблица по умолчанию для треков артиста
const DefaultTrackTable = "spotify_data.raw_artist_track"

// Track представляет строку таблицы треков в хранилище.
// Таблица задается при вставке, поэтому имя в теге только по умолчанию.
type Track struct {
	bun.BaseModel `bun:"table:spotify_data.raw_artist_track"`

	ID          string `bun:"id,notnull" json:"id"`
	Name        string `bun:"name" json:"name"`
	Popularity  int    `bun:"popularity,type:integer" json:"popularity"`
	ReleaseDate string `bun:"release_date,type:date,nullzero" json:"release_date"`
	AlbumName   string `bun:"album_name" json:"album_name"`
}

// Validate проверяет строку перед вставкой
func (t *Track) Validate() error {
	var errors ValidationErrors

	if err := ValidateRequired("id", t.ID); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if err := ValidateRange("popularity", t.Popularity, 0, 100); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if t.ReleaseDate != "" {
		if err := ValidateDate("release_date", t.ReleaseDate); err != nil {
			errors = append(errors, err.(ValidationError))
		}
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

// TrackSink определяет интерфейс хранилища треков
type TrackSink interface {
	// EnsureTable создает таблицу, если ее нет. Конфликт "уже существует" не является ошибкой.
	EnsureTable(ctx context.Context, table string) error

	// InsertRows вставляет не более MaxInsertRows строк и возвращает ошибки по строкам.
	// Пустой срез означает успешную вставку.
	InsertRows(ctx context.Context, table string, rows []Track) []error
}

// MaxInsertRows максимальный размер одной пачки вставки
const MaxInsertRows = 500
