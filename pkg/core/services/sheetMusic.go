package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bandtools/gigplan/pkg/core/availability"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// SheetMusicStore defines the database operations needed for the sheet
// music summary
type SheetMusicStore interface {
	ListMembers(ctx context.Context) ([]model.BandMember, error)
}

// SheetMusic returns the printed-sheet-music preference counts per
// instrument group
func SheetMusic(ctx context.Context, database SheetMusicStore, logger *zap.Logger) ([]availability.SheetMusicCount, error) {
	members, err := database.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	counts := availability.SheetMusicSummary(members)
	logger.Debug("Sheet music summary built",
		zap.Int("members", len(members)),
		zap.Int("groups", len(counts)))

	return counts, nil
}
