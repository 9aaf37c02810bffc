package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bandtools/gigplan/internal/config"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// mockGigStore implements a test double for the gig store
type mockGigStore struct {
	gigs      []model.Gig
	inserted  []model.Gig
	listErr   error
	insertErr error
}

func (m *mockGigStore) ListGigs(ctx context.Context) ([]model.Gig, error) {
	return m.gigs, m.listErr
}

func (m *mockGigStore) InsertGigs(ctx context.Context, gigs []model.Gig) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, gigs...)
	return nil
}

func TestScheduleGigs_WeeklyRehearsals(t *testing.T) {
	mock := &mockGigStore{}
	schedule := config.GigSchedule{
		RRule: "FREQ=WEEKLY;BYDAY=TH",
		Title: "Rehearsal",
		Venue: "Rehearsal Room",
	}
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)  // Monday
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) // Sunday four weeks on

	result, err := ScheduleGigs(context.Background(), mock, zap.NewNop(), schedule, from, until)
	require.NoError(t, err)

	// Thursdays: Jan 8, 15, 22, 29
	require.Len(t, result.Created, 4)
	expectedDates := []string{"2026-01-08", "2026-01-15", "2026-01-22", "2026-01-29"}
	for i, gig := range result.Created {
		assert.Equal(t, expectedDates[i], gig.Date)
		assert.Equal(t, "Rehearsal", gig.Title)
		assert.Equal(t, "Rehearsal Room", gig.Venue)
		assert.NotEmpty(t, gig.ID)
		assert.Equal(t, time.Thursday, mustParseDate(t, gig.Date).Weekday())
	}
	assert.Equal(t, result.Created, mock.inserted)
	assert.Equal(t, 0, result.Skipped)
}

func TestScheduleGigs_SkipsExistingDates(t *testing.T) {
	mock := &mockGigStore{
		gigs: []model.Gig{
			{ID: "g1", Title: "Rehearsal", Date: "2026-01-08"},
			{ID: "g2", Title: "Concert", Date: "2026-01-15"}, // different title, no clash
		},
	}
	schedule := config.GigSchedule{RRule: "FREQ=WEEKLY;BYDAY=TH", Title: "Rehearsal"}
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)

	result, err := ScheduleGigs(context.Background(), mock, zap.NewNop(), schedule, from, until)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "2026-01-15", result.Created[0].Date)
}

func TestScheduleGigs_NothingToCreate(t *testing.T) {
	mock := &mockGigStore{
		gigs: []model.Gig{{ID: "g1", Title: "Rehearsal", Date: "2026-01-08"}},
	}
	schedule := config.GigSchedule{RRule: "FREQ=WEEKLY;BYDAY=TH", Title: "Rehearsal"}
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	result, err := ScheduleGigs(context.Background(), mock, zap.NewNop(), schedule, from, until)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, mock.inserted, "no insert for empty batch")
}

func TestScheduleGigs_InvalidRange(t *testing.T) {
	mock := &mockGigStore{}
	schedule := config.GigSchedule{RRule: "FREQ=WEEKLY;BYDAY=TH", Title: "Rehearsal"}
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := ScheduleGigs(context.Background(), mock, zap.NewNop(), schedule, from, from)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be after")
}

func TestScheduleGigs_InvalidRRule(t *testing.T) {
	mock := &mockGigStore{}
	schedule := config.GigSchedule{RRule: "BOGUS", Title: "Rehearsal"}
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := ScheduleGigs(context.Background(), mock, zap.NewNop(), schedule, from, until)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestScheduleGigs_InsertFailure(t *testing.T) {
	mock := &mockGigStore{insertErr: errors.New("db down")}
	schedule := config.GigSchedule{RRule: "FREQ=WEEKLY;BYDAY=TH", Title: "Rehearsal"}
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)

	_, err := ScheduleGigs(context.Background(), mock, zap.NewNop(), schedule, from, until)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert gigs")
}

func mustParseDate(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return parsed
}
