package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pgdem/desporto/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"
)

// DefaultNotifyChannel is the LISTEN/NOTIFY channel announcing key writes
const DefaultNotifyChannel = "pgdem_store_changes"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres keeps each collection blob as a jsonb row in kv_store
type Postgres struct {
	db            *sql.DB
	notifyChannel string
}

// NewPostgres creates the medium and makes sure the backing table exists
func NewPostgres(ctx context.Context, db *sql.DB, notifyChannel string) (*Postgres, error) {
	if notifyChannel == "" {
		notifyChannel = DefaultNotifyChannel
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return &Postgres{db: db, notifyChannel: notifyChannel}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value pqtype.NullRawMessage
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if !value.Valid {
		return nil, false, nil
	}
	return value.RawMessage, true, nil
}

// Set upserts the blob and notifies listeners in the same transaction, so the
// notification is only delivered when the write commits.
func (p *Postgres) Set(ctx context.Context, key string, blob []byte) error {
	value := pqtype.NullRawMessage{RawMessage: json.RawMessage(blob), Valid: len(blob) > 0}
	return sqlutil.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
        `, key, value); err != nil {
			return fmt.Errorf("failed to set key %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, p.notifyChannel, key); err != nil {
			return fmt.Errorf("failed to notify %s: %w", p.notifyChannel, err)
		}
		return nil
	})
}

func (p *Postgres) Clear(ctx context.Context) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM kv_store`)
	if err != nil {
		return fmt.Errorf("failed to clear kv_store: %w", err)
	}
	n, _ := res.RowsAffected()
	log.Info().Int64("rows", n).Msg("cleared kv_store")
	return nil
}
