package state

import (
	"context"
	"database/sql"

	dbutil "github.com/llehouerou/tablib/internal/db"
)

const currentSchemaVersion = 1

func initSchema(ctx context.Context, db *sql.DB) error {
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS kv (
				key TEXT PRIMARY KEY,
				value BLOB NOT NULL,
				updated_at INTEGER NOT NULL
			);
		`)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		return err
	})
}
