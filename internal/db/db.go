package db

import (
	"context"
	"database/sql"
)

type DB struct {
	*sql.DB
}

const marketplaceMigration = `
CREATE TABLE IF NOT EXISTS identities (
    subject_id text PRIMARY KEY,
    phone text,
    roles text[] NOT NULL,
    active_role text NOT NULL,
    display_name text NOT NULL,
    email text,
    badges text[] NOT NULL DEFAULT '{}',
    agent_profile jsonb,
    vendor_profile jsonb,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS identities_phone_unique
ON identities (phone)
WHERE phone IS NOT NULL AND phone <> '';
`

func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, marketplaceMigration)
	return err
}
