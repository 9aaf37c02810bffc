// Package useradmin manages user accounts and their role flags. The safety
// rules live here: the system can never be left without an admin, and no
// caller can delete their own account.
package useradmin

import (
	"context"

	"go.uber.org/zap"

	"github.com/bandtools/gigplan/pkg/core/fault"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// Store defines the user persistence operations
type Store interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	SetUserRole(ctx context.Context, uid string, role model.RoleName, enabled bool) error
	// DeleteUserRecords removes the user's account, role and band-member
	// records as a single logical batch.
	DeleteUserRecords(ctx context.Context, uid string) error
}

// Manager validates role changes and user deletion before delegating to
// the store
type Manager struct {
	store  Store
	logger *zap.Logger
}

// New creates a user admin Manager
func New(store Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// SetRole enables or disables one role flag for a user. Revoking admin from
// the sole remaining admin is rejected.
func (m *Manager) SetRole(ctx context.Context, sess model.Session, uid string, role model.RoleName, enabled bool) error {
	if !sess.Roles.Admin {
		return fault.New(fault.KindPermissionDenied, "only admins may change roles")
	}
	if !role.IsValid() {
		return fault.New(fault.KindValidation, "unknown role %q", role)
	}

	if role == model.RoleAdmin && !enabled {
		remaining, err := m.adminCountExcluding(ctx, uid)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return fault.New(fault.KindLastAdmin, "cannot revoke admin from the last admin")
		}
	}

	m.logger.Info("Setting user role",
		zap.String("uid", uid),
		zap.String("role", string(role)),
		zap.Bool("enabled", enabled))

	if err := m.store.SetUserRole(ctx, uid, role, enabled); err != nil {
		return fault.Wrap(err, "failed to set role for user %s", uid)
	}
	return nil
}

// DeleteUser removes a user and their associated records. Self-deletion is
// rejected unconditionally; deleting a user whose removal would leave zero
// admins is rejected.
func (m *Manager) DeleteUser(ctx context.Context, sess model.Session, uid string) error {
	if !sess.Roles.Admin {
		return fault.New(fault.KindPermissionDenied, "only admins may delete users")
	}
	if uid == "" {
		return fault.New(fault.KindValidation, "user id must not be empty")
	}
	if uid == sess.UserID {
		return fault.New(fault.KindSelfDelete, "you cannot delete your own account")
	}

	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return fault.Wrap(err, "failed to list users")
	}

	var target *model.User
	admins := 0
	for i := range users {
		if users[i].Roles.Admin {
			admins++
		}
		if users[i].UID == uid {
			target = &users[i]
		}
	}
	if target == nil {
		return fault.New(fault.KindNotFound, "user %s not found", uid)
	}
	if target.Roles.Admin && admins-1 == 0 {
		return fault.New(fault.KindLastAdmin, "cannot delete the last admin")
	}

	m.logger.Info("Deleting user", zap.String("uid", uid), zap.String("email", target.Email))

	if err := m.store.DeleteUserRecords(ctx, uid); err != nil {
		return fault.Wrap(err, "failed to delete user %s", uid)
	}
	return nil
}

func (m *Manager) adminCountExcluding(ctx context.Context, uid string) (int, error) {
	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return 0, fault.Wrap(err, "failed to list users")
	}
	count := 0
	for _, u := range users {
		if u.UID != uid && u.Roles.Admin {
			count++
		}
	}
	return count, nil
}
