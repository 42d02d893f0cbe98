package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// sqliteKV implements KV on the documents table.
type sqliteKV struct {
	db *sqlx.DB
}

func (kv *sqliteKV) Get(ctx context.Context, key string, dest any) error {
	var raw string
	err := kv.db.GetContext(ctx, &raw, "SELECT value FROM documents WHERE key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (kv *sqliteKV) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = kv.db.ExecContext(ctx, `
		INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (kv *sqliteKV) Delete(ctx context.Context, key string) error {
	_, err := kv.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys on the documents table follow fixed shapes per session.
func ProfileKey(session string) string { return "profile_" + session }

func MissionsKey(session, date string) string { return "missions_" + session + "_" + date }

func GoalsKey(session string) string { return "goals_" + session }

func ReviewItemsKey(session string) string { return "reviewItems_" + session }

func LastStudyDateKey(session string) string { return "lastStudyDate_" + session }

func SessionsKey(session string) string { return "sessions_" + session }
