package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tafsiri.site/backend/internal/globaltime"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const userListCap = 100

// UserRecord is the read model for one registered user.
type UserRecord struct {
	ID          string    `json:"id"`
	FirebaseUID string    `json:"firebaseuid"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Timestamp   time.Time `json:"timestamp"`
}

// CreateUserParams carries a registration. Role defaults to "user".
type CreateUserParams struct {
	FirebaseUID string
	Name        string
	Role        string
}

// CreateUser persists one user with a fresh id. firebaseuid uniqueness is not
// enforced, matching the registration surface this replaces.
func (p *Pool) CreateUser(ctx context.Context, params CreateUserParams) (*UserRecord, error) {
	if strings.TrimSpace(params.FirebaseUID) == "" || strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("create user: firebaseuid and name are required")
	}

	role := strings.TrimSpace(params.Role)
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("create user: role must be %q or %q", RoleUser, RoleAdmin)
	}

	record := &UserRecord{
		ID:          uuid.NewString(),
		FirebaseUID: params.FirebaseUID,
		Name:        params.Name,
		Role:        role,
		Timestamp:   globaltime.UTC(),
	}

	const q = `
INSERT INTO users (user_uuid, firebaseuid, name, role, timestamp)
VALUES ($1::uuid, $2, $3, $4, $5)
`
	if _, err := p.Exec(ctx, q, record.ID, record.FirebaseUID, record.Name, record.Role, record.Timestamp); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return record, nil
}

// ListUsers returns up to 100 users in store-native order.
func (p *Pool) ListUsers(ctx context.Context) ([]UserRecord, error) {
	const q = `
SELECT user_uuid::text, firebaseuid, name, role, timestamp
FROM users
LIMIT $1
`
	rows, err := p.Query(ctx, q, userListCap)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	items := make([]UserRecord, 0, 16)
	for rows.Next() {
		var row UserRecord
		if err := rows.Scan(&row.ID, &row.FirebaseUID, &row.Name, &row.Role, &row.Timestamp); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return items, nil
}

// CountUsers reports the user total; startup seeding uses it to decide
// whether a default admin is needed.
func (p *Pool) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := p.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// FindAdmin resolves an identity to a user with the admin role. ErrNoRows
// covers both "no such user" and "user is not an admin"; the admin gate treats
// them identically.
func (p *Pool) FindAdmin(ctx context.Context, firebaseUID string) (*UserRecord, error) {
	const q = `
SELECT user_uuid::text, firebaseuid, name, role, timestamp
FROM users
WHERE firebaseuid = $1
  AND role = 'admin'
LIMIT 1
`
	var row UserRecord
	if err := p.QueryRow(ctx, q, firebaseUID).Scan(&row.ID, &row.FirebaseUID, &row.Name, &row.Role, &row.Timestamp); err != nil {
		if IsNoRows(err) {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("query admin user: %w", err)
	}
	return &row, nil
}
