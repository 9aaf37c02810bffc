package postgres

import (
	"context"
	"fmt"

	"github.com/bandtools/gigplan/pkg/core/model"
)

// ListMembers retrieves all band members with their instrument assignments
func (d *DB) ListMembers(ctx context.Context) ([]model.BandMember, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, instrument, wants_printed_sheet_music,
		       driving_status, has_winter_tyres, has_german_environment_sticker,
		       has_lease_car, driving_remark
		FROM band_member
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query band members: %w", err)
	}
	defer rows.Close()

	var members []model.BandMember
	for rows.Next() {
		var m model.BandMember
		var instrument, drivingStatus, drivingRemark *string
		var winterTyres, envSticker, leaseCar bool
		if err := rows.Scan(&m.ID, &m.Name, &instrument, &m.WantsPrintedSheetMusic,
			&drivingStatus, &winterTyres, &envSticker, &leaseCar, &drivingRemark); err != nil {
			return nil, fmt.Errorf("failed to scan band member: %w", err)
		}
		if instrument != nil {
			m.Assignment = model.Named(*instrument)
		}
		if drivingStatus != nil {
			driving := &model.DrivingAvailability{
				Status:                      *drivingStatus,
				HasWinterTyres:              winterTyres,
				HasGermanEnvironmentSticker: envSticker,
				HasLeaseCar:                 leaseCar,
			}
			if drivingRemark != nil {
				driving.Remark = *drivingRemark
			}
			m.Driving = driving
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating band members: %w", err)
	}

	return members, nil
}

// ListInstruments retrieves all instrument names
func (d *DB) ListInstruments(ctx context.Context) ([]string, error) {
	rows, err := d.pool.Query(ctx, `SELECT name FROM instrument`)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	var instruments []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		instruments = append(instruments, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instruments: %w", err)
	}

	return instruments, nil
}

// UpdateMemberInstrument sets or clears a member's instrument assignment
func (d *DB) UpdateMemberInstrument(ctx context.Context, memberID string, assignment model.Assignment) error {
	var instrument *string
	if name, ok := assignment.Instrument(); ok {
		instrument = &name
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE band_member SET instrument = $2 WHERE id = $1
	`, memberID, instrument)
	if err != nil {
		return fmt.Errorf("failed to update member instrument: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member not found: %s", memberID)
	}
	return nil
}

// AddInstrument inserts a new instrument name
func (d *DB) AddInstrument(ctx context.Context, name string) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO instrument (name) VALUES ($1)
	`, name)
	if err != nil {
		return fmt.Errorf("failed to insert instrument: %w", err)
	}
	return nil
}

// RemoveInstrument deletes an instrument by name
func (d *DB) RemoveInstrument(ctx context.Context, name string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM instrument WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete instrument: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("instrument not found: %s", name)
	}
	return nil
}

// AddMember inserts a new band member record
func (d *DB) AddMember(ctx context.Context, member model.BandMember) error {
	var instrument *string
	if name, ok := member.Assignment.Instrument(); ok {
		instrument = &name
	}

	var drivingStatus, drivingRemark *string
	var winterTyres, envSticker, leaseCar bool
	if member.Driving != nil {
		drivingStatus = &member.Driving.Status
		winterTyres = member.Driving.HasWinterTyres
		envSticker = member.Driving.HasGermanEnvironmentSticker
		leaseCar = member.Driving.HasLeaseCar
		if member.Driving.Remark != "" {
			drivingRemark = &member.Driving.Remark
		}
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO band_member (id, name, instrument, wants_printed_sheet_music,
			driving_status, has_winter_tyres, has_german_environment_sticker,
			has_lease_car, driving_remark)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, member.ID, member.Name, instrument, member.WantsPrintedSheetMusic,
		drivingStatus, winterTyres, envSticker, leaseCar, drivingRemark)
	if err != nil {
		return fmt.Errorf("failed to insert band member: %w", err)
	}
	return nil
}

// RemoveMember deletes a band member; their availability records go with
// them via the cascade
func (d *DB) RemoveMember(ctx context.Context, memberID string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM band_member WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete band member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member not found: %s", memberID)
	}
	return nil
}
