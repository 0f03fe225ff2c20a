package service

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"signal_bot/pkg/db"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS chat_prefs (
	chat_id    BIGINT PRIMARY KEY,
	settings   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectSQL = `SELECT settings FROM chat_prefs WHERE chat_id = $1`
	upsertSQL = `INSERT INTO chat_prefs (chat_id, settings, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (chat_id) DO UPDATE SET settings = EXCLUDED.settings, updated_at = now()`
)

// PG хранит настройки чата одной JSONB-колонкой.
type PG struct {
	db db.TxManager
}

func NewPG(ctx context.Context, tm db.TxManager) (*PG, error) {
	if _, err := tm.Conn().Exec(ctx, createTableSQL); err != nil {
		return nil, errors.Wrap(err, "create chat_prefs")
	}
	return &PG{db: tm}, nil
}

func (s *PG) Get(ctx context.Context, chatID int64) (p Prefs, err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrNotFound) {
			err = errors.Wrap(err, "pg.Prefs.Get")
		}
	}()

	var raw []byte
	if err := s.db.Conn().QueryRow(ctx, selectSQL, chatID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prefs{}, ErrNotFound
		}
		return Prefs{}, err
	}
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return Prefs{}, err
	}
	p.ChatID = chatID
	return p, nil
}

func (s *PG) Save(ctx context.Context, p Prefs) error {
	raw, err := sonic.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode prefs")
	}
	err = s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, upsertSQL, p.ChatID, raw)
		return err
	})
	return errors.Wrap(err, "pg.Prefs.Save")
}
