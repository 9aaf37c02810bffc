package availability

import (
	"context"

	"go.uber.org/zap"

	"github.com/bandtools/gigplan/pkg/core/fault"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// RecordStore defines the store operations needed to record availability
type RecordStore interface {
	UpsertAvailability(ctx context.Context, gigID, memberID string, record model.AvailabilityRecord) error
}

// Recorder writes availability records. Records are only ever overwritten,
// never deleted.
type Recorder struct {
	store  RecordStore
	logger *zap.Logger
}

// NewRecorder creates a Recorder backed by the given store
func NewRecorder(store RecordStore, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record upserts one member's availability for one gig. A member may record
// their own availability; recording for someone else requires management
// permission.
func (r *Recorder) Record(ctx context.Context, sess model.Session, gigID, memberID string, record model.AvailabilityRecord) error {
	if sess.UserID != memberID && !sess.CanManage() {
		return fault.New(fault.KindPermissionDenied, "only managers may record availability for other members")
	}
	if gigID == "" || memberID == "" {
		return fault.New(fault.KindValidation, "gig id and member id are required")
	}
	if !record.Status.IsValid() {
		return fault.New(fault.KindValidation, "invalid availability status %q", record.Status)
	}

	r.logger.Info("Recording availability",
		zap.String("gig_id", gigID),
		zap.String("member_id", memberID),
		zap.String("status", string(record.Status)))

	if err := r.store.UpsertAvailability(ctx, gigID, memberID, record); err != nil {
		return fault.Wrap(err, "failed to record availability")
	}
	return nil
}
