package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/dbx"
)

type SQLiteSnapshotRepository struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

func (r *SQLiteSnapshotRepository) Load(ctx context.Context, userID string) ([]models.Reading, error) {
	query := `select id, user_id, systolic, diastolic, pulse, timestamp, time_of_day, notes, created_at
		from readings_cache where user_id=? order by timestamp desc`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached readings: %w", err)
	}
	defer rows.Close()

	result := []models.Reading{}
	for rows.Next() {
		var item models.Reading
		var ts, createdAt int64
		var timeOfDay string
		err := rows.Scan(&item.Id, &item.UserId, &item.Systolic, &item.Diastolic,
			&item.Pulse, &ts, &timeOfDay, &item.Notes, &createdAt)
		if err != nil {
			return nil, err
		}
		item.Timestamp = time.UnixMilli(ts)
		item.CreatedAt = time.UnixMilli(createdAt)
		item.TimeOfDay = models.TimeOfDay(timeOfDay)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteSnapshotRepository) Replace(ctx context.Context, userID string, readings []models.Reading) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from readings_cache where user_id=?`, userID); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		query := `insert into readings_cache
			(id, user_id, systolic, diastolic, pulse, timestamp, time_of_day, notes, created_at)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for _, item := range readings {
			_, err := tx.ExecContext(ctx, query, item.Id, item.UserId, item.Systolic,
				item.Diastolic, item.Pulse, item.Timestamp.UnixMilli(),
				string(item.TimeOfDay), item.Notes, item.CreatedAt.UnixMilli())
			if err != nil {
				return fmt.Errorf("failed to insert cached reading: %w", err)
			}
		}
		return nil
	})
}

type SQLiteMetadataRepository struct {
	db *sql.DB
}

func NewSQLiteMetadataRepository(db *sql.DB) *SQLiteMetadataRepository {
	return &SQLiteMetadataRepository{db: db}
}

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("not found")

func (r *SQLiteMetadataRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `select value from metadata where key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

func (r *SQLiteMetadataRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `insert into metadata(key, value) values(?, ?)
		on conflict(key) do update set value=excluded.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}

func (r *SQLiteMetadataRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `delete from metadata where key=?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}
	return nil
}

func (r *SQLiteMetadataRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `delete from metadata`); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
