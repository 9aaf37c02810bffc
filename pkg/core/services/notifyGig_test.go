package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bandtools/gigplan/internal/config"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// mockNotifyStore implements a test double for the notification store
type mockNotifyStore struct {
	gigs    []model.Gig
	members []model.BandMember
	users   []model.User
	records map[string]model.AvailabilityRecord
}

func (m *mockNotifyStore) GetGig(ctx context.Context, gigID string) (*model.Gig, error) {
	for i := range m.gigs {
		if m.gigs[i].ID == gigID {
			return &m.gigs[i], nil
		}
	}
	return nil, fmt.Errorf("gig not found: %s", gigID)
}

func (m *mockNotifyStore) ListMembers(ctx context.Context) ([]model.BandMember, error) {
	return m.members, nil
}

func (m *mockNotifyStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return m.users, nil
}

func (m *mockNotifyStore) GetAvailability(ctx context.Context, gigID string) (map[string]model.AvailabilityRecord, error) {
	if m.records == nil {
		return map[string]model.AvailabilityRecord{}, nil
	}
	return m.records, nil
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

// mockEmailClient records sent emails and can fail for chosen recipients
type mockEmailClient struct {
	sent    []sentEmail
	failFor map[string]error
}

func (m *mockEmailClient) SendEmail(to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentEmail{to, subject, body})
	return nil
}

func notifyTestConfig() *config.Config {
	return &config.Config{
		DatabaseURL: "postgres://localhost/gigplan",
		GmailSender: "The Band",
	}
}

func TestNotifyGig_OnlyNonRespondersEmailed(t *testing.T) {
	mock := &mockNotifyStore{
		gigs: []model.Gig{{ID: "g1", Title: "Concert", Date: "2026-06-20", Venue: "Paradiso"}},
		members: []model.BandMember{
			{ID: "m1", Name: "Anna"},
			{ID: "m2", Name: "Ben"},
		},
		users: []model.User{
			{UID: "m1", Email: "anna@example.com"},
			{UID: "m2", Email: "ben@example.com"},
		},
		records: map[string]model.AvailabilityRecord{
			"m1": {Status: model.StatusAvailable},
		},
	}
	emailClient := &mockEmailClient{}

	result, err := NotifyGig(context.Background(), mock, emailClient, notifyTestConfig(), zap.NewNop(), "g1")
	require.NoError(t, err)

	require.Len(t, result.Sent, 1)
	assert.Equal(t, "Ben", result.Sent[0].MemberName)
	require.Len(t, emailClient.sent, 1)
	assert.Equal(t, "ben@example.com", emailClient.sent[0].to)
	assert.Contains(t, emailClient.sent[0].subject, "Concert")
	assert.Contains(t, emailClient.sent[0].body, "Ben")
	assert.Contains(t, emailClient.sent[0].body, "Paradiso")
	assert.Contains(t, emailClient.sent[0].body, "The Band")
}

func TestNotifyGig_MemberWithoutAccountEmail(t *testing.T) {
	mock := &mockNotifyStore{
		gigs: []model.Gig{{ID: "g1", Title: "Concert", Date: "2026-06-20"}},
		members: []model.BandMember{
			{ID: "m1", Name: "Anna"},
		},
		// No user record for m1
	}
	emailClient := &mockEmailClient{}

	result, err := NotifyGig(context.Background(), mock, emailClient, notifyTestConfig(), zap.NewNop(), "g1")
	require.NoError(t, err)

	assert.Empty(t, result.Sent)
	assert.Equal(t, []string{"Anna"}, result.SkippedNoEmail)
	assert.Empty(t, emailClient.sent)
}

func TestNotifyGig_SendFailureDoesNotAbort(t *testing.T) {
	mock := &mockNotifyStore{
		gigs: []model.Gig{{ID: "g1", Title: "Concert", Date: "2026-06-20"}},
		members: []model.BandMember{
			{ID: "m1", Name: "Anna"},
			{ID: "m2", Name: "Ben"},
		},
		users: []model.User{
			{UID: "m1", Email: "anna@example.com"},
			{UID: "m2", Email: "ben@example.com"},
		},
	}
	emailClient := &mockEmailClient{
		failFor: map[string]error{"anna@example.com": errors.New("mailbox full")},
	}

	result, err := NotifyGig(context.Background(), mock, emailClient, notifyTestConfig(), zap.NewNop(), "g1")
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "Anna", result.Failed[0].MemberName)
	assert.Contains(t, result.Failed[0].Error, "mailbox full")
	require.Len(t, result.Sent, 1)
	assert.Equal(t, "Ben", result.Sent[0].MemberName)
}

func TestNotifyGig_UnknownGig(t *testing.T) {
	mock := &mockNotifyStore{}
	emailClient := &mockEmailClient{}

	_, err := NotifyGig(context.Background(), mock, emailClient, notifyTestConfig(), zap.NewNop(), "ghost")
	require.Error(t, err)
}

func TestNotifyGig_EveryoneResponded(t *testing.T) {
	mock := &mockNotifyStore{
		gigs: []model.Gig{{ID: "g1", Title: "Concert", Date: "2026-06-20"}},
		members: []model.BandMember{
			{ID: "m1", Name: "Anna"},
		},
		users: []model.User{{UID: "m1", Email: "anna@example.com"}},
		records: map[string]model.AvailabilityRecord{
			"m1": {Status: model.StatusMaybe},
		},
	}
	emailClient := &mockEmailClient{}

	result, err := NotifyGig(context.Background(), mock, emailClient, notifyTestConfig(), zap.NewNop(), "g1")
	require.NoError(t, err)
	assert.Empty(t, result.Sent)
	assert.Empty(t, result.Failed)
	assert.Empty(t, emailClient.sent)
}
