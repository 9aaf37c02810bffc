package postgres

import (
	"context"
	"fmt"

	"github.com/bandtools/gigplan/pkg/core/model"
)

// GetAvailability retrieves all availability records for a gig, keyed by
// member id. Members without a record simply have no entry in the map.
func (d *DB) GetAvailability(ctx context.Context, gigID string) (map[string]model.AvailabilityRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT member_id, status, can_drive, notes
		FROM availability
		WHERE gig_id = $1
	`, gigID)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	records := make(map[string]model.AvailabilityRecord)
	for rows.Next() {
		var memberID string
		var record model.AvailabilityRecord
		var status string
		if err := rows.Scan(&memberID, &status, &record.CanDrive, &record.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan availability record: %w", err)
		}
		record.Status = model.AvailabilityStatus(status)
		records[memberID] = record
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability records: %w", err)
	}

	return records, nil
}

// UpsertAvailability writes one member's availability for one gig,
// overwriting any previous record
func (d *DB) UpsertAvailability(ctx context.Context, gigID, memberID string, record model.AvailabilityRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO availability (gig_id, member_id, status, can_drive, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (gig_id, member_id)
		DO UPDATE SET status = EXCLUDED.status,
		              can_drive = EXCLUDED.can_drive,
		              notes = EXCLUDED.notes
	`, gigID, memberID, string(record.Status), record.CanDrive, record.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}
