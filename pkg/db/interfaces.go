package db

import (
	"context"

	"github.com/bandtools/gigplan/pkg/core/model"
)

// RosterStore defines the roster persistence operations
type RosterStore interface {
	ListMembers(ctx context.Context) ([]model.BandMember, error)
	ListInstruments(ctx context.Context) ([]string, error)
	UpdateMemberInstrument(ctx context.Context, memberID string, assignment model.Assignment) error
	AddInstrument(ctx context.Context, name string) error
	RemoveInstrument(ctx context.Context, name string) error
	AddMember(ctx context.Context, member model.BandMember) error
	RemoveMember(ctx context.Context, memberID string) error
}

// GigStore defines the gig persistence operations
type GigStore interface {
	ListGigs(ctx context.Context) ([]model.Gig, error)
	GetGig(ctx context.Context, gigID string) (*model.Gig, error)
	InsertGigs(ctx context.Context, gigs []model.Gig) error
}

// AvailabilityStore defines the per-gig availability persistence operations.
// Records are keyed by member id within a gig and are only ever overwritten,
// never deleted.
type AvailabilityStore interface {
	GetAvailability(ctx context.Context, gigID string) (map[string]model.AvailabilityRecord, error)
	UpsertAvailability(ctx context.Context, gigID, memberID string, record model.AvailabilityRecord) error
}

// UserStore defines the user/role persistence operations
type UserStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, uid string) (*model.User, error)
	SetUserRole(ctx context.Context, uid string, role model.RoleName, enabled bool) error
	// DeleteUserRecords removes the user's account, role flags and
	// band-member record as one logical batch.
	DeleteUserRecords(ctx context.Context, uid string) error
}

// Database is the full set of store operations backing the application.
// The postgres.DB implementation satisfies it.
type Database interface {
	RosterStore
	GigStore
	AvailabilityStore
	UserStore
}
