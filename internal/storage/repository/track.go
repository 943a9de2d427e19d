// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"discography/internal/model"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
)

// sqlStateDuplicateTable код ошибки PostgreSQL "relation already exists"
const sqlStateDuplicateTable = "42P07"

// ErrBatchTooLarge возвращается при вставке больше model.MaxInsertRows строк
var ErrBatchTooLarge = errors.New("insert batch is too large")

// TrackRepository реализует model.TrackSink поверх PostgreSQL
type TrackRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewTrackRepository создает новый репозиторий треков
func NewTrackRepository(db *bun.DB, logger *zap.Logger) *TrackRepository {
	return &TrackRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureTable создает таблицу треков. Ошибки создания логируются и не возвращаются.
func (r *TrackRepository) EnsureTable(ctx context.Context, table string) error {
	if schema, _, ok := strings.Cut(table, "."); ok {
		if _, err := r.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS ?", bun.Ident(schema)); err != nil {
			r.logger.Warn("Failed to create schema", zap.String("schema", schema), zap.Error(err))
		}
	}

	_, err := r.db.NewCreateTable().
		Model((*model.Track)(nil)).
		ModelTableExpr("?", bun.Ident(table)).
		Exec(ctx)

	switch {
	case err == nil:
		r.logger.Info("Table created", zap.String("table", table))
	case IsDuplicateTable(err):
		r.logger.Info("Table already exists, skipping creation", zap.String("table", table))
	default:
		r.logger.Warn("Failed to create table, continuing", zap.String("table", table), zap.Error(err))
	}

	return nil
}

// InsertRows вставляет пачку строк одним запросом.
// Невалидные строки возвращаются как ошибки по строкам, пачка тогда не вставляется.
func (r *TrackRepository) InsertRows(ctx context.Context, table string, rows []model.Track) []error {
	if len(rows) > model.MaxInsertRows {
		return []error{fmt.Errorf("%w: %d rows", ErrBatchTooLarge, len(rows))}
	}
	if len(rows) == 0 {
		return nil
	}

	if errs := ValidateRows(rows); len(errs) > 0 {
		return errs
	}

	_, err := r.db.NewInsert().
		Model(&rows).
		ModelTableExpr("?", bun.Ident(table)).
		Exec(ctx)
	if err != nil {
		return []error{fmt.Errorf("failed to insert tracks into %s: %w", table, err)}
	}

	return nil
}

// ValidateRows проверяет строки и возвращает ошибку для каждой невалидной
func ValidateRows(rows []model.Track) []error {
	var errs []error
	for i := range rows {
		if err := rows[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("row %d (id %q): %w", i, rows[i].ID, err))
		}
	}
	return errs
}

// IsDuplicateTable сообщает, что таблица уже существует
func IsDuplicateTable(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == sqlStateDuplicateTable
	}
	return false
}
