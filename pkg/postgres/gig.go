package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bandtools/gigplan/pkg/core/model"
)

// ListGigs retrieves all gigs ordered by date
func (d *DB) ListGigs(ctx context.Context) ([]model.Gig, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, title, date, venue, address
		FROM gig
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query gigs: %w", err)
	}
	defer rows.Close()

	var gigs []model.Gig
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, err
		}
		gigs = append(gigs, *gig)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gigs: %w", err)
	}

	return gigs, nil
}

// GetGig retrieves a single gig by id
func (d *DB) GetGig(ctx context.Context, gigID string) (*model.Gig, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, title, date, venue, address
		FROM gig
		WHERE id = $1
	`, gigID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gig: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query gig: %w", err)
		}
		return nil, fmt.Errorf("gig not found: %s", gigID)
	}
	return scanGig(rows)
}

// InsertGigs inserts gig records in a single transaction
func (d *DB) InsertGigs(ctx context.Context, gigs []model.Gig) error {
	if len(gigs) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, gig := range gigs {
		_, err := tx.Exec(ctx, `
			INSERT INTO gig (id, title, date, venue, address)
			VALUES ($1, $2, $3, $4, $5)
		`, gig.ID, gig.Title, gig.Date, gig.Venue, gig.Address)
		if err != nil {
			return fmt.Errorf("failed to insert gig: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanGig(rows pgx.Rows) (*model.Gig, error) {
	var g model.Gig
	var date time.Time
	if err := rows.Scan(&g.ID, &g.Title, &date, &g.Venue, &g.Address); err != nil {
		return nil, fmt.Errorf("failed to scan gig: %w", err)
	}
	g.Date = date.Format("2006-01-02")
	return &g, nil
}
