// Package db holds small helpers shared by the SQL-backed stores.
package db

import (
	"context"
	"database/sql"
)

// WithTx runs fn inside a transaction bound to ctx.
// It rolls back when fn fails and commits otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
