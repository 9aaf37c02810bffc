package availability

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

type mockRecordStore struct {
	upserts   []string // "gigID/memberID"
	upsertErr error
}

func (m *mockRecordStore) UpsertAvailability(ctx context.Context, gigID, memberID string, record model.AvailabilityRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, gigID+"/"+memberID)
	return nil
}

func TestRecord_OwnAvailability(t *testing.T) {
	mock := &mockRecordStore{}
	recorder := NewRecorder(mock, zap.NewNop())
	sess := model.Session{UserID: "m1", Roles: model.Roles{BandMember: true}}

	err := recorder.Record(context.Background(), sess, "gig1", "m1", model.AvailabilityRecord{Status: model.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, []string{"gig1/m1"}, mock.upserts)
}

func TestRecord_ForOtherMemberRequiresManager(t *testing.T) {
	mock := &mockRecordStore{}
	recorder := NewRecorder(mock, zap.NewNop())

	plainMember := model.Session{UserID: "m1", Roles: model.Roles{BandMember: true}}
	err := recorder.Record(context.Background(), plainMember, "gig1", "m2", model.AvailabilityRecord{Status: model.StatusMaybe})
	require.Error(t, err)
	assert.Equal(t, fault.KindPermissionDenied, fault.KindOf(err))
	assert.Empty(t, mock.upserts)

	manager := model.Session{UserID: "m1", Roles: model.Roles{BandManager: true}}
	err = recorder.Record(context.Background(), manager, "gig1", "m2", model.AvailabilityRecord{Status: model.StatusMaybe})
	require.NoError(t, err)
	assert.Equal(t, []string{"gig1/m2"}, mock.upserts)
}

func TestRecord_InvalidStatus(t *testing.T) {
	mock := &mockRecordStore{}
	recorder := NewRecorder(mock, zap.NewNop())
	sess := model.Session{UserID: "m1"}

	err := recorder.Record(context.Background(), sess, "gig1", "m1", model.AvailabilityRecord{Status: "perhaps"})
	require.Error(t, err)
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
	assert.Empty(t, mock.upserts)
}

func TestRecord_StoreRejection(t *testing.T) {
	mock := &mockRecordStore{upsertErr: errors.New("connection reset")}
	recorder := NewRecorder(mock, zap.NewNop())
	sess := model.Session{UserID: "m1"}

	err := recorder.Record(context.Background(), sess, "gig1", "m1", model.AvailabilityRecord{Status: model.StatusAvailable})
	require.Error(t, err)
	assert.Equal(t, fault.KindStoreRejected, fault.KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}
