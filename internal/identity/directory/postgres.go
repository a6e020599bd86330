package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"marketplace-service/internal/db"
	"marketplace-service/internal/identity"

	"github.com/lib/pq"
)

// PostgresDirectory is the production identity directory.
type PostgresDirectory struct {
	db *db.DB
}

func NewPostgresDirectory(db *db.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const identityColumns = `
	subject_id, phone, roles, active_role,
	display_name, email, badges, agent_profile, vendor_profile
`

func (d *PostgresDirectory) BySubject(ctx context.Context, subjectID string) (*identity.Identity, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE subject_id = $1
	`, subjectID)

	return scanIdentity(row)
}

func (d *PostgresDirectory) ByPhone(ctx context.Context, phone string) (*identity.Identity, error) {
	if phone == "" {
		return nil, ErrNotFound
	}

	row := d.db.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE phone = $1
	`, phone)

	return scanIdentity(row)
}

func (d *PostgresDirectory) Put(ctx context.Context, ident *identity.Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}

	roles := make([]string, 0, len(ident.Roles))
	for _, r := range ident.Roles {
		roles = append(roles, string(r))
	}

	agentJSON, err := marshalProfile(ident.Agent)
	if err != nil {
		return err
	}
	vendorJSON, err := marshalProfile(ident.Vendor)
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO identities (
			subject_id, phone, roles, active_role,
			display_name, email, badges, agent_profile, vendor_profile
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (subject_id) DO UPDATE SET
			phone = EXCLUDED.phone,
			roles = EXCLUDED.roles,
			active_role = EXCLUDED.active_role,
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			badges = EXCLUDED.badges,
			agent_profile = EXCLUDED.agent_profile,
			vendor_profile = EXCLUDED.vendor_profile,
			updated_at = NOW()
	`,
		ident.SubjectID,
		nullable(ident.Phone),
		pq.Array(roles),
		string(ident.ActiveRole),
		ident.DisplayName,
		nullable(ident.Email),
		pq.Array(ident.Badges),
		agentJSON,
		vendorJSON,
	)
	if err != nil {
		return fmt.Errorf("directory: put failed: %w", err)
	}
	return nil
}

func marshalProfile(p any) (any, error) {
	switch v := p.(type) {
	case *identity.AgentProfile:
		if v == nil {
			return nil, nil
		}
	case *identity.VendorProfile:
		if v == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("directory: marshal profile: %w", err)
	}
	return data, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanIdentity(row *sql.Row) (*identity.Identity, error) {
	var (
		ident      identity.Identity
		phone      sql.NullString
		email      sql.NullString
		roles      []string
		activeRole string
		agentJSON  []byte
		vendorJSON []byte
	)

	err := row.Scan(
		&ident.SubjectID,
		&phone,
		pq.Array(&roles),
		&activeRole,
		&ident.DisplayName,
		&email,
		pq.Array(&ident.Badges),
		&agentJSON,
		&vendorJSON,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("directory: scan failed: %w", err)
	}

	ident.Phone = phone.String
	ident.Email = email.String
	ident.ActiveRole = identity.Role(activeRole)
	for _, r := range roles {
		ident.Roles = append(ident.Roles, identity.Role(r))
	}

	if len(agentJSON) > 0 {
		ident.Agent = &identity.AgentProfile{}
		if err := json.Unmarshal(agentJSON, ident.Agent); err != nil {
			return nil, fmt.Errorf("directory: agent profile decode: %w", err)
		}
	}
	if len(vendorJSON) > 0 {
		ident.Vendor = &identity.VendorProfile{}
		if err := json.Unmarshal(vendorJSON, ident.Vendor); err != nil {
			return nil, fmt.Errorf("directory: vendor profile decode: %w", err)
		}
	}

	return &ident, nil
}
