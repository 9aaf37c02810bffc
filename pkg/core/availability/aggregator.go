// Package availability derives instrument-level summaries from the roster
// and per-gig availability records. Everything in this file is pure: no I/O,
// no errors, missing inputs fall back to defined defaults.
package availability

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bandtools/gigplan/pkg/core/model"
)

// InstrumentSummary is the derived availability for one instrument group.
// It is recomputed from current state on every use and never persisted.
type InstrumentSummary struct {
	Instrument string
	Available  int
	Maybe      int
	Total      int
	Combined   model.AvailabilityStatus
}

// Compact renders the summary counts as "N/M"
func (s InstrumentSummary) Compact() string {
	return fmt.Sprintf("%d/%d", s.Available, s.Total)
}

// Full renders the summary counts as "(N/M)"
func (s InstrumentSummary) Full() string {
	return fmt.Sprintf("(%d/%d)", s.Available, s.Total)
}

// SheetMusicCount is the printed-sheet-music preference count for one
// instrument group
type SheetMusicCount struct {
	Instrument   string
	WantsPrinted int
	Total        int
}

// UnassignedGroup is the display bucket for members without an instrument
// in the sheet music summary
const UnassignedGroup = "Unassigned"

// effectiveStatus resolves a member's status for a gig. A member with no
// record counts as unavailable, not as an unknown state.
func effectiveStatus(memberID string, records map[string]model.AvailabilityRecord) model.AvailabilityStatus {
	if rec, ok := records[memberID]; ok && rec.Status.IsValid() {
		return rec.Status
	}
	return model.StatusUnavailable
}

// combinedStatus derives the group status from counts. An empty group is
// unavailable; otherwise more than half available wins, and more than 30%
// available-or-maybe yields maybe.
func combinedStatus(available, maybe, total int) model.AvailabilityStatus {
	if total == 0 {
		return model.StatusUnavailable
	}
	availablePct := float64(available) / float64(total)
	maybePct := float64(maybe) / float64(total)
	switch {
	case availablePct > 0.5:
		return model.StatusAvailable
	case availablePct+maybePct > 0.3:
		return model.StatusMaybe
	default:
		return model.StatusUnavailable
	}
}

// Summarize computes the availability summary for one instrument given the
// members assigned to it and the gig's availability records keyed by member
// id. Members assigned to a different instrument are ignored.
func Summarize(instrument string, members []model.BandMember, records map[string]model.AvailabilityRecord) InstrumentSummary {
	summary := InstrumentSummary{Instrument: instrument}

	for _, member := range members {
		name, ok := member.Assignment.Instrument()
		if !ok || name != instrument {
			continue
		}
		summary.Total++
		switch effectiveStatus(member.ID, records) {
		case model.StatusAvailable:
			summary.Available++
		case model.StatusMaybe:
			summary.Maybe++
		}
	}

	summary.Combined = combinedStatus(summary.Available, summary.Maybe, summary.Total)
	return summary
}

// SummarizeAll groups members by assigned instrument and summarizes each
// group. Members without an instrument are excluded. Results are ordered by
// instrument name using locale-aware collation so output is deterministic
// regardless of input order.
func SummarizeAll(members []model.BandMember, records map[string]model.AvailabilityRecord) []InstrumentSummary {
	grouped := make(map[string][]model.BandMember)
	for _, member := range members {
		name, ok := member.Assignment.Instrument()
		if !ok {
			continue
		}
		grouped[name] = append(grouped[name], member)
	}

	instruments := make([]string, 0, len(grouped))
	for name := range grouped {
		instruments = append(instruments, name)
	}
	sortInstruments(instruments)

	summaries := make([]InstrumentSummary, 0, len(instruments))
	for _, name := range instruments {
		summaries = append(summaries, Summarize(name, grouped[name], records))
	}
	return summaries
}

// SheetMusicSummary counts printed-sheet-music preferences per instrument
// group. Unlike the availability summary, members without an instrument form
// an explicit Unassigned bucket. Empty groups are omitted.
func SheetMusicSummary(members []model.BandMember) []SheetMusicCount {
	counts := make(map[string]*SheetMusicCount)
	for _, member := range members {
		group := UnassignedGroup
		if name, ok := member.Assignment.Instrument(); ok {
			group = name
		}
		entry, exists := counts[group]
		if !exists {
			entry = &SheetMusicCount{Instrument: group}
			counts[group] = entry
		}
		entry.Total++
		if member.WantsPrintedSheetMusic {
			entry.WantsPrinted++
		}
	}

	instruments := make([]string, 0, len(counts))
	for name := range counts {
		if name != UnassignedGroup {
			instruments = append(instruments, name)
		}
	}
	sortInstruments(instruments)
	// Unassigned bucket renders after all named instruments
	if _, ok := counts[UnassignedGroup]; ok {
		instruments = append(instruments, UnassignedGroup)
	}

	result := make([]SheetMusicCount, 0, len(instruments))
	for _, name := range instruments {
		result = append(result, *counts[name])
	}
	return result
}

// sortInstruments orders instrument names ascending with locale-aware
// collation. A fresh collator per call keeps the helpers safe for
// concurrent use.
func sortInstruments(names []string) {
	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(names, func(i, j int) bool {
		if c := collator.CompareString(names[i], names[j]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})
}
