package model

// AvailabilityStatus is a member's stated availability for a single gig
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusUnavailable AvailabilityStatus = "unavailable"
	StatusMaybe       AvailabilityStatus = "maybe"
)

func (s AvailabilityStatus) IsValid() bool {
	return s == StatusAvailable || s == StatusUnavailable || s == StatusMaybe
}

// DrivingAvailability captures a member's general ability to drive to gigs
type DrivingAvailability struct {
	Status                      string
	HasWinterTyres              bool
	HasGermanEnvironmentSticker bool
	HasLeaseCar                 bool
	Remark                      string
}

// BandMember represents a person in the band roster
type BandMember struct {
	ID                     string
	Name                   string
	Assignment             Assignment
	WantsPrintedSheetMusic bool
	Driving                *DrivingAvailability // nil if not provided
}

// AvailabilityRecord is one member's response for one gig.
// A missing record is treated as unavailable, not as unknown.
type AvailabilityRecord struct {
	Status   AvailabilityStatus
	CanDrive *bool // nil if not answered
	Notes    string
}

// Gig represents a scheduled performance or rehearsal
type Gig struct {
	ID    string
	Title string
	Date  string // YYYY-MM-DD
	Venue string
	// Address is the venue address used for distance lookups; may be empty
	Address string
}

// RoleName identifies one of the three application roles
type RoleName string

const (
	RoleAdmin       RoleName = "admin"
	RoleBandManager RoleName = "bandManager"
	RoleBandMember  RoleName = "bandMember"
)

func (r RoleName) IsValid() bool {
	return r == RoleAdmin || r == RoleBandManager || r == RoleBandMember
}

// Roles holds the role flags for one user
type Roles struct {
	Admin       bool
	BandManager bool
	BandMember  bool
}

// User is an application account with role flags
type User struct {
	UID   string
	Email string
	Roles Roles
}

// Session is the authenticated caller's identity and role flags.
// It is passed explicitly into every manager operation; nothing in the
// core reads identity from ambient state.
type Session struct {
	UserID        string
	Email         string
	EmailVerified bool
	Roles         Roles
}

// CanManage reports whether the caller may perform roster management actions
func (s Session) CanManage() bool {
	return s.Roles.Admin || s.Roles.BandManager
}
