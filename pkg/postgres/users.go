package postgres

import (
	"context"
	"fmt"

	"github.com/bandtools/gigplan/pkg/core/model"
)

// ListUsers retrieves all users with their role flags
func (d *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT u.uid, u.email,
		       COALESCE(r.is_admin, FALSE),
		       COALESCE(r.is_band_manager, FALSE),
		       COALESCE(r.is_band_member, FALSE)
		FROM app_user u
		LEFT JOIN user_role r ON r.uid = u.uid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.UID, &u.Email, &u.Roles.Admin, &u.Roles.BandManager, &u.Roles.BandMember); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetUser retrieves a single user with role flags
func (d *DB) GetUser(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	err := d.pool.QueryRow(ctx, `
		SELECT u.uid, u.email,
		       COALESCE(r.is_admin, FALSE),
		       COALESCE(r.is_band_manager, FALSE),
		       COALESCE(r.is_band_member, FALSE)
		FROM app_user u
		LEFT JOIN user_role r ON r.uid = u.uid
		WHERE u.uid = $1
	`, uid).Scan(&u.UID, &u.Email, &u.Roles.Admin, &u.Roles.BandManager, &u.Roles.BandMember)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", uid, err)
	}
	return &u, nil
}

// SetUserRole enables or disables one role flag for a user
func (d *DB) SetUserRole(ctx context.Context, uid string, role model.RoleName, enabled bool) error {
	var column string
	switch role {
	case model.RoleAdmin:
		column = "is_admin"
	case model.RoleBandManager:
		column = "is_band_manager"
	case model.RoleBandMember:
		column = "is_band_member"
	default:
		return fmt.Errorf("unknown role: %s", role)
	}

	// The column name comes from the switch above, never from input
	query := fmt.Sprintf(`
		INSERT INTO user_role (uid, %s) VALUES ($1, $2)
		ON CONFLICT (uid) DO UPDATE SET %s = EXCLUDED.%s
	`, column, column, column)

	_, err := d.pool.Exec(ctx, query, uid, enabled)
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}
	return nil
}

// DeleteUserRecords removes the user's role, band-member and account rows.
// The three deletes run in one transaction so a partial failure leaves
// nothing half-removed.
func (d *DB) DeleteUserRecords(ctx context.Context, uid string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_role WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("failed to delete user role: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM band_member WHERE id = $1`, uid); err != nil {
		return fmt.Errorf("failed to delete band member record: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM app_user WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", uid)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
