package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/Masterminds/squirrel"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/errors"
	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/models"
	"github.com/marioc/chessvault/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type archiveRepository struct {
	db *sql.DB
}

// NewArchiveRepository creates a SQLite-backed ArchiveRepository.
func NewArchiveRepository(db *sql.DB) repository.ArchiveRepository {
	return &archiveRepository{db: db}
}

func (r *archiveRepository) Exists(ctx context.Context, key models.MonthKey) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("archive_repo")

	query := sqlBuilder.Select("1").
		From("archive_months").
		Where(squirrel.Eq{"username": key.Username, "year": key.Year, "month": key.Month})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return false, err
	}

	var one int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&one)
	if stderrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Error("failed to check cache entry %s: %v", key, err)
		return false, err
	}
	return true, nil
}

func (r *archiveRepository) Read(ctx context.Context, key models.MonthKey) ([]chesscom.MonthlyGame, error) {
	log := logger.FromContext(ctx).WithPrefix("archive_repo")
	log.Debug("reading cached month: %s", key)

	query := sqlBuilder.Select("payload").
		From("archive_months").
		Where(squirrel.Eq{"username": key.Username, "year": key.Year, "month": key.Month})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var payload string
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&payload)
	if stderrors.Is(err, sql.ErrNoRows) {
		log.Debug("cache miss: %s", key)
		return nil, errors.NewNotFoundError("archive month", key)
	}
	if err != nil {
		log.Error("failed to read cache entry %s: %v", key, err)
		return nil, err
	}

	var games []chesscom.MonthlyGame
	if err := json.Unmarshal([]byte(payload), &games); err != nil {
		log.Error("corrupt cache payload for %s: %v", key, err)
		return nil, errors.NewMalformedError(err)
	}
	log.Debug("cache hit: %s, %d games", key, len(games))
	return games, nil
}

func (r *archiveRepository) Write(ctx context.Context, key models.MonthKey, games []chesscom.MonthlyGame) error {
	log := logger.FromContext(ctx).WithPrefix("archive_repo")
	log.Debug("writing cached month: %s, %d games", key, len(games))

	payload, err := json.Marshal(games)
	if err != nil {
		return errors.NewMalformedError(err)
	}

	// Single upsert statement: a cancelled writer leaves either the old
	// row or the new one, never a partial payload.
	_, err = r.db.ExecContext(ctx, `
INSERT INTO archive_months (username, year, month, payload, fetched_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(username, year, month) DO UPDATE SET
    payload = excluded.payload,
    fetched_at = excluded.fetched_at
`, key.Username, key.Year, key.Month, string(payload))
	if err != nil {
		log.Error("failed to write cache entry %s: %v", key, err)
	}
	return err
}
