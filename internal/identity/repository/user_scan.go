package repository

import (
	"encoding/json"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

const userSelectColumns = `SELECT id, email, first_name, last_name, avatar, password_hash, roles,
	is_active, last_login_at, rotation_nonce, reset_code_hash, reset_code_expires_at,
	created_at, updated_at`

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one user row, decoding the JSON-encoded role set.
func scanUser(row rowScanner) (*identityDomain.User, error) {
	var user identityDomain.User
	var rolesJSON []byte

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Avatar,
		&user.PasswordHash,
		&rolesJSON,
		&user.IsActive,
		&user.LastLoginAt,
		&user.RotationNonce,
		&user.ResetCodeHash,
		&user.ResetCodeExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rolesJSON) > 0 {
		if err := json.Unmarshal(rolesJSON, &user.Roles); err != nil {
			return nil, err
		}
	}
	return &user, nil
}
