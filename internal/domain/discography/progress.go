package discography

import "go.uber.org/zap"

// LogReporter пишет прогресс по альбомам в лог
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter создает репортер прогресса поверх логгера
func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// AlbumStarted сообщает о начале обработки альбома
func (r *LogReporter) AlbumStarted(index, total int, name string) {
	r.logger.Info("Processing album",
		zap.Int("index", index),
		zap.Int("total", total),
		zap.String("album", name))
}

// AlbumFinished сообщает количество новых треков альбома и общий итог
func (r *LogReporter) AlbumFinished(index, total, processed, collected int) {
	r.logger.Info("Album processed",
		zap.Int("index", index),
		zap.Int("total", total),
		zap.Int("tracks_processed", processed),
		zap.Int("unique_tracks_collected", collected))
}
