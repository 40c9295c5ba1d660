package store

import (
	"context"
	"database/sql"
	"fmt"
)

// The global sequence orders rows across every event table, so an LLM call
// can be placed before or after the answer it judged. It is bumped inside
// the same transaction as the insert that consumes it, which keeps the
// sequence gap-free even when an insert fails.

const sequenceDDL = `CREATE TABLE IF NOT EXISTS global_sequence (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	next_val INTEGER NOT NULL DEFAULT 1
)`

func initSequence(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sequenceDDL); err != nil {
		return fmt.Errorf("create sequence table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// nextSequence returns the next sequence number and increments the counter.
func nextSequence(ctx context.Context, tx *sql.Tx) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// appendWithSequence runs insert inside a transaction together with the
// sequence bump and returns the assigned sequence.
func appendWithSequence(ctx context.Context, db *sql.DB, insert func(tx *sql.Tx, seq int64) error) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := insert(tx, seq); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return seq, nil
}
