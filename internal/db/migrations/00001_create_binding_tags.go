package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBindingTags, downCreateBindingTags)
}

func upCreateBindingTags(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS binding_tags (
    binding_key TEXT NOT NULL,
    tagger_id   TEXT NOT NULL,
    data        BYTEA,
    PRIMARY KEY (binding_key, tagger_id)
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS binding_tags (
    binding_key VARCHAR(255) NOT NULL,
    tagger_id   VARCHAR(255) NOT NULL,
    data        BLOB,
    PRIMARY KEY (binding_key, tagger_id)
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS binding_tags (
    binding_key TEXT NOT NULL,
    tagger_id   TEXT NOT NULL,
    data        BLOB,
    PRIMARY KEY (binding_key, tagger_id)
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create binding_tags table: %w", err)
	}
	return nil
}

func downCreateBindingTags(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS binding_tags`)
	return err
}
