package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"digitomize/internal/apperror"
	"digitomize/internal/constants"
	"digitomize/internal/db"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// BulkResult summarizes an unordered insert.
type BulkResult struct {
	Inserted   int
	Duplicates int
	Failed     int
}

// insertUnordered inserts every item, batching DBBatchSize rows per
// transaction. A failing row never stops the rest: duplicate keys are
// counted, any other error is collected and returned joined.
func insertUnordered[T any](
	ctx context.Context,
	sqlDB *sql.DB,
	queries *db.Queries,
	logger zerolog.Logger,
	resource string,
	items []T,
	key func(T) string,
	insert func(context.Context, *db.Queries, T) error,
) (BulkResult, error) {
	var (
		result BulkResult
		errs   []error
	)

	for i := 0; i < len(items); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(items))
		batch := items[i:end]

		tx, err := sqlDB.BeginTx(ctx, nil)
		if err != nil {
			result.Failed += len(batch)
			errs = append(errs, fmt.Errorf("failed to begin transaction: %w", err))
			continue
		}
		qtx := queries.WithTx(tx)

		var inserted, duplicates, failed int
		for _, item := range batch {
			err := classifyInsert(resource, key(item), insert(ctx, qtx, item))
			switch {
			case err == nil:
				inserted++
			case errors.Is(err, apperror.ErrDuplicateKey):
				duplicates++
			default:
				failed++
				errs = append(errs, fmt.Errorf("failed to insert %s: %w", key(item), err))
			}
		}

		if err := tx.Commit(); err != nil {
			_ = tx.Rollback()
			result.Failed += len(batch)
			errs = append(errs, fmt.Errorf("failed to commit batch: %w", err))
			continue
		}
		result.Inserted += inserted
		result.Duplicates += duplicates
		result.Failed += failed
	}

	if result.Duplicates > 0 {
		logger.Info().
			Int("duplicates", result.Duplicates).
			Int("inserted", result.Inserted).
			Msg("Some duplicate(s) skipped")
	}

	return result, errors.Join(errs...)
}

// classifyInsert turns a primary key or unique violation into
// apperror.ErrDuplicateKey.
func classifyInsert(resource, key string, err error) error {
	if isUniqueViolation(err) {
		return apperror.DuplicateKey(resource, key, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// notFound maps sql.ErrNoRows to apperror.ErrNotFound.
func notFound(err error, resource, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource, id)
	}
	return err
}
