package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/bandtools/gigplan/internal/config"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// ScheduleGigsStore defines the database operations needed for scheduling gigs
type ScheduleGigsStore interface {
	ListGigs(ctx context.Context) ([]model.Gig, error)
	InsertGigs(ctx context.Context, gigs []model.Gig) error
}

// ScheduleResult represents the outcome of expanding a gig schedule
type ScheduleResult struct {
	Created []model.Gig
	Skipped int // occurrences that already had a gig on that date with the same title
}

// ScheduleGigs expands a recurring gig schedule into concrete gig records
// between from and until. Dates that already have a gig with the same title
// are skipped, so re-running a schedule is safe.
func ScheduleGigs(
	ctx context.Context,
	database ScheduleGigsStore,
	logger *zap.Logger,
	schedule config.GigSchedule,
	from, until time.Time,
) (*ScheduleResult, error) {
	if !until.After(from) {
		return nil, fmt.Errorf("until (%s) must be after from (%s)",
			until.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	logger.Info("Scheduling gigs",
		zap.String("title", schedule.Title),
		zap.String("rrule", schedule.RRule),
		zap.String("from", from.Format("2006-01-02")),
		zap.String("until", until.Format("2006-01-02")))

	rule, err := rrule.StrToRRule(schedule.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", schedule.RRule, err)
	}
	rule.DTStart(truncateToDay(from))

	occurrences := rule.Between(truncateToDay(from), truncateToDay(until), true)
	logger.Debug("Expanded schedule", zap.Int("occurrences", len(occurrences)))

	existing, err := database.ListGigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gigs: %w", err)
	}

	existingDates := make(map[string]bool)
	for _, gig := range existing {
		if gig.Title == schedule.Title {
			existingDates[gig.Date] = true
		}
	}

	result := &ScheduleResult{}
	for _, occurrence := range occurrences {
		date := occurrence.Format("2006-01-02")
		if existingDates[date] {
			result.Skipped++
			continue
		}
		result.Created = append(result.Created, model.Gig{
			ID:      uuid.New().String(),
			Title:   schedule.Title,
			Date:    date,
			Venue:   schedule.Venue,
			Address: schedule.Address,
		})
	}

	if len(result.Created) > 0 {
		if err := database.InsertGigs(ctx, result.Created); err != nil {
			return nil, fmt.Errorf("failed to insert gigs: %w", err)
		}
	}

	logger.Info("Gigs scheduled",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// truncateToDay normalizes to midnight UTC so occurrence expansion is not
// affected by time of day
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
