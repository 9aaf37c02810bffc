// Package roster owns the member/instrument mapping: instrument
// reassignment, instrument add/remove, and member add/remove. All
// invariants (instrument in use, valid assignment targets) are checked
// locally before any store call.
package roster

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bandtools/gigplan/pkg/core/fault"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// UnassignedLabel is the drop-target label that maps to the empty
// assignment. It is a UI sentinel, not a stored value.
const UnassignedLabel = "Unassigned"

// Store defines the roster persistence operations
type Store interface {
	ListMembers(ctx context.Context) ([]model.BandMember, error)
	ListInstruments(ctx context.Context) ([]string, error)
	UpdateMemberInstrument(ctx context.Context, memberID string, assignment model.Assignment) error
	AddInstrument(ctx context.Context, name string) error
	RemoveInstrument(ctx context.Context, name string) error
	AddMember(ctx context.Context, member model.BandMember) error
	RemoveMember(ctx context.Context, memberID string) error
}

// Manager validates roster mutations and delegates persistence to the store
type Manager struct {
	store    Store
	logger   *zap.Logger
	validate *validator.Validate
}

// New creates a roster Manager
func New(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		logger:   logger,
		validate: validator.New(),
	}
}

// ReassignResult reports whether a reassignment changed anything and what
// the resolved target was
type ReassignResult struct {
	Changed bool
	Target  model.Assignment
}

// Reassign moves a member to the instrument named by targetLabel. The label
// must be a current instrument name or the Unassigned sentinel; anything
// else is an invalid drop target and resolves to a silent no-op. Reassigning
// a member to their current effective instrument performs no store write.
func (m *Manager) Reassign(ctx context.Context, sess model.Session, memberID, targetLabel string) (*ReassignResult, error) {
	if !sess.CanManage() {
		return nil, fault.New(fault.KindPermissionDenied, "only managers may reassign instruments")
	}

	instruments, err := m.store.ListInstruments(ctx)
	if err != nil {
		return nil, fault.Wrap(err, "failed to list instruments")
	}

	target, valid := resolveTarget(targetLabel, instruments)
	if !valid {
		// Invalid drop target: ignore without error
		m.logger.Debug("Ignoring reassignment to unknown target",
			zap.String("member_id", memberID),
			zap.String("target", targetLabel))
		return &ReassignResult{Changed: false}, nil
	}

	members, err := m.store.ListMembers(ctx)
	if err != nil {
		return nil, fault.Wrap(err, "failed to list members")
	}

	member := findMember(members, memberID)
	if member == nil {
		return nil, fault.New(fault.KindNotFound, "member %s not found", memberID)
	}

	if member.Assignment.Equal(target) {
		m.logger.Debug("Member already assigned to target",
			zap.String("member_id", memberID),
			zap.String("target", targetLabel))
		return &ReassignResult{Changed: false, Target: target}, nil
	}

	m.logger.Info("Reassigning member",
		zap.String("member_id", memberID),
		zap.String("member_name", member.Name),
		zap.String("target", targetLabel))

	if err := m.store.UpdateMemberInstrument(ctx, memberID, target); err != nil {
		return nil, fault.Wrap(err, "failed to update member instrument")
	}

	return &ReassignResult{Changed: true, Target: target}, nil
}

// AddInstrument adds a new instrument name to the band's instrument set
func (m *Manager) AddInstrument(ctx context.Context, sess model.Session, name string) error {
	if !sess.CanManage() {
		return fault.New(fault.KindPermissionDenied, "only managers may add instruments")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fault.New(fault.KindValidation, "instrument name must not be empty")
	}

	m.logger.Info("Adding instrument", zap.String("instrument", name))
	if err := m.store.AddInstrument(ctx, name); err != nil {
		return fault.Wrap(err, "failed to add instrument %q", name)
	}
	return nil
}

// RemoveInstrument removes an instrument from the set. An instrument that
// any member is currently assigned to can never be removed; this is checked
// here before any store call rather than left to the store.
func (m *Manager) RemoveInstrument(ctx context.Context, sess model.Session, name string) error {
	if !sess.CanManage() {
		return fault.New(fault.KindPermissionDenied, "only managers may remove instruments")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fault.New(fault.KindValidation, "instrument name must not be empty")
	}

	members, err := m.store.ListMembers(ctx)
	if err != nil {
		return fault.Wrap(err, "failed to list members")
	}
	for _, member := range members {
		if assigned, ok := member.Assignment.Instrument(); ok && assigned == name {
			return fault.New(fault.KindInstrumentInUse, "instrument %q still has members assigned", name)
		}
	}

	m.logger.Info("Removing instrument", zap.String("instrument", name))
	if err := m.store.RemoveInstrument(ctx, name); err != nil {
		return fault.Wrap(err, "failed to remove instrument %q", name)
	}
	return nil
}

// NewMemberInput holds the fields for creating a band member
type NewMemberInput struct {
	Name                   string `validate:"required"`
	Instrument             string // optional; must be in the instrument set when given
	WantsPrintedSheetMusic bool
	Driving                *model.DrivingAvailability
}

// AddMember validates the input and creates a new member. When an
// instrument is given it must exist in the current instrument set.
func (m *Manager) AddMember(ctx context.Context, sess model.Session, input NewMemberInput) (*model.BandMember, error) {
	if !sess.CanManage() {
		return nil, fault.New(fault.KindPermissionDenied, "only managers may add members")
	}
	if err := m.validate.Struct(input); err != nil {
		return nil, fault.New(fault.KindValidation, "invalid member input: %v", err)
	}

	assignment := model.Unassigned()
	if input.Instrument != "" {
		instruments, err := m.store.ListInstruments(ctx)
		if err != nil {
			return nil, fault.Wrap(err, "failed to list instruments")
		}
		if !containsString(instruments, input.Instrument) {
			return nil, fault.New(fault.KindValidation, "unknown instrument %q", input.Instrument)
		}
		assignment = model.Named(input.Instrument)
	}

	member := model.BandMember{
		ID:                     uuid.New().String(),
		Name:                   input.Name,
		Assignment:             assignment,
		WantsPrintedSheetMusic: input.WantsPrintedSheetMusic,
		Driving:                input.Driving,
	}

	m.logger.Info("Adding member",
		zap.String("member_id", member.ID),
		zap.String("member_name", member.Name))

	if err := m.store.AddMember(ctx, member); err != nil {
		return nil, fault.Wrap(err, "failed to add member")
	}
	return &member, nil
}

// RemoveMember removes a member from the roster
func (m *Manager) RemoveMember(ctx context.Context, sess model.Session, memberID string) error {
	if !sess.CanManage() {
		return fault.New(fault.KindPermissionDenied, "only managers may remove members")
	}
	if memberID == "" {
		return fault.New(fault.KindValidation, "member id must not be empty")
	}

	m.logger.Info("Removing member", zap.String("member_id", memberID))
	if err := m.store.RemoveMember(ctx, memberID); err != nil {
		return fault.Wrap(err, "failed to remove member %s", memberID)
	}
	return nil
}

// resolveTarget maps a drop-target label to an assignment. The second
// return value is false when the label is neither a known instrument nor
// the Unassigned sentinel.
func resolveTarget(label string, instruments []string) (model.Assignment, bool) {
	if label == UnassignedLabel {
		return model.Unassigned(), true
	}
	if containsString(instruments, label) {
		return model.Named(label), true
	}
	return model.Assignment{}, false
}

func findMember(members []model.BandMember, memberID string) *model.BandMember {
	for i := range members {
		if members[i].ID == memberID {
			return &members[i]
		}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
