// Package service содержит сервисы приложения.
package service

import (
	"context"

	"discography/internal/model"

	"go.uber.org/zap"
)

// LoadReport итог загрузки треков в хранилище
type LoadReport struct {
	Total         int
	Batches       int
	FailedBatches []int
}

// Failed сообщает, были ли неуспешные пачки
func (r LoadReport) Failed() bool {
	return len(r.FailedBatches) > 0
}

// LoadTracks вставляет треки последовательными пачками по model.MaxInsertRows.
// Ошибка пачки логируется с ее номером и не прерывает загрузку остальных.
func LoadTracks(ctx context.Context, sink model.TrackSink, table string, tracks []model.Track, logger *zap.Logger) LoadReport {
	report := LoadReport{Total: len(tracks)}

	for start := 0; start < len(tracks); start += model.MaxInsertRows {
		end := min(start+model.MaxInsertRows, len(tracks))
		batch := tracks[start:end]
		report.Batches++

		errs := sink.InsertRows(ctx, table, batch)
		if len(errs) > 0 {
			report.FailedBatches = append(report.FailedBatches, report.Batches)
			logger.Error("Errors in batch",
				zap.Int("batch", report.Batches),
				zap.Int("records", len(batch)),
				zap.Errors("errors", errs))
			continue
		}

		logger.Info("Inserted batch",
			zap.Int("batch", report.Batches),
			zap.Int("records", len(batch)))
	}

	return report
}
