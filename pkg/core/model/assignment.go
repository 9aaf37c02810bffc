package model

// Assignment is a member's instrument assignment: either unassigned or a
// named instrument. The zero value is unassigned. Using a tagged value
// instead of a bare string keeps the "Unassigned" display label out of the
// data model.
type Assignment struct {
	instrument string
}

// Unassigned returns the empty assignment
func Unassigned() Assignment {
	return Assignment{}
}

// Named returns an assignment to the given instrument
func Named(instrument string) Assignment {
	return Assignment{instrument: instrument}
}

// IsAssigned reports whether the assignment names an instrument
func (a Assignment) IsAssigned() bool {
	return a.instrument != ""
}

// Instrument returns the assigned instrument name and whether one is set
func (a Assignment) Instrument() (string, bool) {
	return a.instrument, a.instrument != ""
}

// Equal reports whether two assignments refer to the same instrument,
// treating all unassigned values as equal
func (a Assignment) Equal(other Assignment) bool {
	return a.instrument == other.instrument
}
