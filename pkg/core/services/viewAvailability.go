package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bandtools/gigplan/pkg/core/availability"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// AvailabilityBoardStore defines the database operations needed for the
// availability board
type AvailabilityBoardStore interface {
	ListGigs(ctx context.Context) ([]model.Gig, error)
	GetGig(ctx context.Context, gigID string) (*model.Gig, error)
	ListMembers(ctx context.Context) ([]model.BandMember, error)
	GetAvailability(ctx context.Context, gigID string) (map[string]model.AvailabilityRecord, error)
}

// AvailabilityBoard is the per-gig availability overview for display
type AvailabilityBoard struct {
	Gig          model.Gig
	Summaries    []availability.InstrumentSummary
	Responded    int // members with a recorded entry
	TotalMembers int
	Drivers      int // responders who can drive
}

// ViewAvailability builds the availability board for a gig. An empty gigID
// selects the next upcoming gig, falling back to the most recent one when
// nothing lies ahead.
func ViewAvailability(ctx context.Context, database AvailabilityBoardStore, logger *zap.Logger, gigID string) (*AvailabilityBoard, error) {
	logger.Debug("Building availability board", zap.String("gig_id", gigID))

	var gig *model.Gig
	if gigID == "" {
		gigs, err := database.ListGigs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch gigs: %w", err)
		}
		if len(gigs) == 0 {
			return nil, fmt.Errorf("no gigs found - please schedule gigs first")
		}
		gig = pickUpcomingGig(gigs, time.Now())
		logger.Debug("Selected gig", zap.String("gig_id", gig.ID), zap.String("date", gig.Date))
	} else {
		var err error
		gig, err = database.GetGig(ctx, gigID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch gig: %w", err)
		}
	}

	members, err := database.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	records, err := database.GetAvailability(ctx, gig.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	drivers := 0
	for _, record := range records {
		if record.CanDrive != nil && *record.CanDrive {
			drivers++
		}
	}

	board := &AvailabilityBoard{
		Gig:          *gig,
		Summaries:    availability.SummarizeAll(members, records),
		Responded:    len(records),
		TotalMembers: len(members),
		Drivers:      drivers,
	}

	logger.Debug("Availability board built",
		zap.String("gig_id", gig.ID),
		zap.Int("instruments", len(board.Summaries)),
		zap.Int("responded", board.Responded),
		zap.Int("total_members", board.TotalMembers))

	return board, nil
}

// pickUpcomingGig returns the first gig on or after now, or the last gig
// when all are in the past. Gigs are assumed sorted by date ascending, as
// the store returns them.
func pickUpcomingGig(gigs []model.Gig, now time.Time) *model.Gig {
	today := now.Format("2006-01-02")
	for i := range gigs {
		if gigs[i].Date >= today {
			return &gigs[i]
		}
	}
	return &gigs[len(gigs)-1]
}
