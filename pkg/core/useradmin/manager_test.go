package useradmin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bandtools/gigplan/pkg/core/fault"
	"github.com/bandtools/gigplan/pkg/core/model"
)

type roleChange struct {
	uid     string
	role    model.RoleName
	enabled bool
}

type mockUserStore struct {
	users []model.User

	roleChanges []roleChange
	deletedUIDs []string

	listErr    error
	setRoleErr error
	deleteErr  error
}

func (m *mockUserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return m.users, m.listErr
}

func (m *mockUserStore) SetUserRole(ctx context.Context, uid string, role model.RoleName, enabled bool) error {
	if m.setRoleErr != nil {
		return m.setRoleErr
	}
	m.roleChanges = append(m.roleChanges, roleChange{uid, role, enabled})
	return nil
}

func (m *mockUserStore) DeleteUserRecords(ctx context.Context, uid string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedUIDs = append(m.deletedUIDs, uid)
	return nil
}

var adminSession = model.Session{UserID: "admin1", Roles: model.Roles{Admin: true}}

func TestSetRole_GrantBandManager(t *testing.T) {
	mock := &mockUserStore{
		users: []model.User{{UID: "u1", Roles: model.Roles{BandMember: true}}},
	}
	mgr := New(mock, zap.NewNop())

	err := mgr.SetRole(context.Background(), adminSession, "u1", model.RoleBandManager, true)
	require.NoError(t, err)
	assert.Equal(t, []roleChange{{"u1", model.RoleBandManager, true}}, mock.roleChanges)
}

func TestSetRole_RevokeLastAdmin(t *testing.T) {
	mock := &mockUserStore{
		users: []model.User{
			{UID: "admin1", Roles: model.Roles{Admin: true}},
			{UID: "u2", Roles: model.Roles{BandMember: true}},
		},
	}
	mgr := New(mock, zap.NewNop())

	err := mgr.SetRole(context.Background(), adminSession, "admin1", model.RoleAdmin, false)
	require.Error(t, err)
	assert.Equal(t, fault.KindLastAdmin, fault.KindOf(err))
	assert.Empty(t, mock.roleChanges, "store must not be called")
}

func TestSetRole_RevokeNonSoleAdmin(t *testing.T) {
	mock := &mockUserStore{
		users: []model.User{
			{UID: "admin1", Roles: model.Roles{Admin: true}},
			{UID: "admin2", Roles: model.Roles{Admin: true}},
		},
	}
	mgr := New(mock, zap.NewNop())

	err := mgr.SetRole(context.Background(), adminSession, "admin2", model.RoleAdmin, false)
	require.NoError(t, err)
	assert.Equal(t, []roleChange{{"admin2", model.RoleAdmin, false}}, mock.roleChanges)
}

func TestSetRole_RequiresAdmin(t *testing.T) {
	mock := &mockUserStore{}
	mgr := New(mock, zap.NewNop())
	sess := model.Session{UserID: "u1", Roles: model.Roles{BandManager: true}}

	err := mgr.SetRole(context.Background(), sess, "u2", model.RoleBandMember, true)
	require.Error(t, err)
	assert.Equal(t, fault.KindPermissionDenied, fault.KindOf(err))
}

func TestSetRole_UnknownRole(t *testing.T) {
	mock := &mockUserStore{}
	mgr := New(mock, zap.NewNop())

	err := mgr.SetRole(context.Background(), adminSession, "u1", "superuser", true)
	require.Error(t, err)
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	mock := &mockUserStore{
		users: []model.User{
			{UID: "admin1", Roles: model.Roles{Admin: true}},
			{UID: "u2", Roles: model.Roles{BandMember: true}},
		},
	}
	mgr := New(mock, zap.NewNop())

	err := mgr.DeleteUser(context.Background(), adminSession, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, mock.deletedUIDs)
}

func TestDeleteUser_SelfDeleteAlwaysRejected(t *testing.T) {
	// Even with another admin present, self-deletion is rejected
	mock := &mockUserStore{
		users: []model.User{
			{UID: "admin1", Roles: model.Roles{Admin: true}},
			{UID: "admin2", Roles: model.Roles{Admin: true}},
		},
	}
	mgr := New(mock, zap.NewNop())

	err := mgr.DeleteUser(context.Background(), adminSession, "admin1")
	require.Error(t, err)
	assert.Equal(t, fault.KindSelfDelete, fault.KindOf(err))
	assert.Empty(t, mock.deletedUIDs)
}

func TestDeleteUser_LastAdmin(t *testing.T) {
	mock := &mockUserStore{
		users: []model.User{
			{UID: "admin1", Roles: model.Roles{Admin: true}},
			{UID: "admin2", Roles: model.Roles{Admin: true}},
		},
	}
	mgr := New(mock, zap.NewNop())

	// Deleting admin2 leaves admin1, fine
	require.NoError(t, mgr.DeleteUser(context.Background(), adminSession, "admin2"))

	// Now simulate admin2 gone; deleting the sole admin is rejected even
	// for a different admin caller
	mock.users = []model.User{{UID: "other", Roles: model.Roles{Admin: true}}}
	err := mgr.DeleteUser(context.Background(), adminSession, "other")
	require.Error(t, err)
	assert.Equal(t, fault.KindLastAdmin, fault.KindOf(err))
}

func TestDeleteUser_NotFound(t *testing.T) {
	mock := &mockUserStore{
		users: []model.User{{UID: "admin1", Roles: model.Roles{Admin: true}}},
	}
	mgr := New(mock, zap.NewNop())

	err := mgr.DeleteUser(context.Background(), adminSession, "ghost")
	require.Error(t, err)
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err))
}

func TestDeleteUser_StoreFailureSurfaced(t *testing.T) {
	mock := &mockUserStore{
		users: []model.User{
			{UID: "admin1", Roles: model.Roles{Admin: true}},
			{UID: "u2"},
		},
		deleteErr: errors.New("partial delete"),
	}
	mgr := New(mock, zap.NewNop())

	err := mgr.DeleteUser(context.Background(), adminSession, "u2")
	require.Error(t, err)
	assert.Equal(t, fault.KindStoreRejected, fault.KindOf(err))
}
