package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"echo-widget/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a ConfigCache backed by the brand_configs table.
func NewSQLiteRepository(db *sql.DB) ConfigCache {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Get(ctx context.Context, recordID string) (*model.CachedConfig, error) {
	query := "SELECT record_id, overlay, fetched_at, expires_at FROM brand_configs WHERE record_id = ?"
	row := r.db.QueryRowContext(ctx, query, recordID)

	var entry model.CachedConfig
	var overlay string
	if err := row.Scan(&entry.RecordID, &overlay, &entry.FetchedAt, &entry.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read cached config: %w", err)
	}
	if err := json.Unmarshal([]byte(overlay), &entry.Overlay); err != nil {
		return nil, fmt.Errorf("could not decode cached config: %w", err)
	}
	return &entry, nil
}

func (r *sqliteRepository) Put(ctx context.Context, entry *model.CachedConfig) error {
	overlay, err := json.Marshal(entry.Overlay)
	if err != nil {
		return fmt.Errorf("could not encode config overlay: %w", err)
	}
	query := `INSERT INTO brand_configs (record_id, overlay, fetched_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(record_id) DO UPDATE SET overlay = excluded.overlay, fetched_at = excluded.fetched_at, expires_at = excluded.expires_at`
	_, err = r.db.ExecContext(ctx, query, entry.RecordID, string(overlay), entry.FetchedAt.UTC(), entry.ExpiresAt.UTC())
	return err
}

func (r *sqliteRepository) Delete(ctx context.Context, recordID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM brand_configs WHERE record_id = ?", recordID)
	return err
}

func (r *sqliteRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM brand_configs WHERE expires_at <= ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
