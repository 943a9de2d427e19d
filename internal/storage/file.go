package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"discography/internal/model"
	"discography/internal/storage/repository"

	"go.uber.org/zap"
)

// FileSink пишет треки в NDJSON файл <dir>/<table>.ndjson вместо базы данных
type FileSink struct {
	dir    string
	logger *zap.Logger
}

// NewFileSink создает файловое хранилище в каталоге dir
func NewFileSink(dir string, logger *zap.Logger) *FileSink {
	return &FileSink{dir: dir, logger: logger}
}

// Path возвращает путь к файлу таблицы
func (s *FileSink) Path(table string) string {
	return filepath.Join(s.dir, table+".ndjson")
}

// EnsureTable создает каталог и пустой файл таблицы, существующий файл не трогает
func (s *FileSink) EnsureTable(_ context.Context, table string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		s.logger.Warn("Failed to create output directory", zap.String("dir", s.dir), zap.Error(err))
		return nil
	}

	f, err := os.OpenFile(s.Path(table), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	switch {
	case err == nil:
		s.logger.Info("Table created", zap.String("path", s.Path(table)))
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("Failed to close file", zap.Error(closeErr))
		}
	case os.IsExist(err):
		s.logger.Info("Table already exists, skipping creation", zap.String("path", s.Path(table)))
	default:
		s.logger.Warn("Failed to create table file, continuing", zap.String("path", s.Path(table)), zap.Error(err))
	}

	return nil
}

// InsertRows дописывает строки в файл таблицы
func (s *FileSink) InsertRows(_ context.Context, table string, rows []model.Track) []error {
	if len(rows) > model.MaxInsertRows {
		return []error{fmt.Errorf("%w: %d rows", repository.ErrBatchTooLarge, len(rows))}
	}

	if errs := repository.ValidateRows(rows); len(errs) > 0 {
		return errs
	}

	f, err := os.OpenFile(s.Path(table), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return []error{fmt.Errorf("failed to open %s: %w", s.Path(table), err)}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("Failed to close file", zap.Error(closeErr))
		}
	}()

	encoder := json.NewEncoder(f)
	for i := range rows {
		if err := encoder.Encode(&rows[i]); err != nil {
			return []error{fmt.Errorf("failed to write row %d: %w", i, err)}
		}
	}

	return nil
}
