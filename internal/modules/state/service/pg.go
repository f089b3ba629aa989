package service

import (
	"context"
	"errors"
	"fmt"
	"signal_bot/pkg/db"

	"github.com/jackc/pgx/v5"
)

const (
	upsertStateSQL = `INSERT INTO bot_state (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	selectStateSQL = `SELECT value FROM bot_state WHERE key = $1`
	createStateSQL = `CREATE TABLE IF NOT EXISTS bot_state (
    key        TEXT PRIMARY KEY,
    value      JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
)

// Pg хранит снапшоты в таблице bot_state.
type Pg struct {
	db *db.PgTxManager
}

// NewPg instance; таблица создаётся, если миграции ещё не прогнали
func NewPg(ctx context.Context, manager *db.PgTxManager) (*Pg, error) {
	if _, err := manager.Conn().Exec(ctx, createStateSQL); err != nil {
		return nil, fmt.Errorf("state.NewPg: %w", err)
	}
	return &Pg{db: manager}, nil
}

// Load from db
func (p *Pg) Load(ctx context.Context, key string, dst any) (ok bool, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("state.Pg.Load: %w", err)
		}
	}()

	var raw []byte
	err = p.db.RunRepeatableRead(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		return tx.QueryRow(ctxTx, selectStateSQL, key).Scan(&raw)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, decode(raw, dst)
}

// Save in db
func (p *Pg) Save(ctx context.Context, key string, v any) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("state.Pg.Save: %w", err)
		}
	}()

	var data []byte
	data, err = encode(v)
	if err != nil {
		return err
	}
	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		_, err := tx.Exec(ctxTx, upsertStateSQL, key, data)
		return err
	})
}

func (p *Pg) Close() error {
	p.db.Close()
	return nil
}
