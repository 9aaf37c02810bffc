package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bandtools/gigplan/internal/config"
	"github.com/bandtools/gigplan/pkg/core/model"
)

// NotifyGigStore defines the database operations needed for gig notifications
type NotifyGigStore interface {
	GetGig(ctx context.Context, gigID string) (*model.Gig, error)
	ListMembers(ctx context.Context) ([]model.BandMember, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetAvailability(ctx context.Context, gigID string) (map[string]model.AvailabilityRecord, error)
}

// EmailClient defines the operations needed to send notification emails
type EmailClient interface {
	SendEmail(to, subject, body string) error
}

// SentNotification records one successfully sent reminder
type SentNotification struct {
	MemberName string
	Email      string
}

// FailedNotification records one reminder that could not be sent
type FailedNotification struct {
	MemberName string
	Email      string
	Error      string
}

// NotifyResult represents the outcome of sending gig reminders
type NotifyResult struct {
	Gig            model.Gig
	Sent           []SentNotification
	Failed         []FailedNotification
	SkippedNoEmail []string // member names without a linked account email
}

// NotifyGig emails every member who has not yet recorded availability for
// the gig. Member emails come from their linked user account; members
// without one are reported as skipped. A failed send does not abort the
// remaining sends.
func NotifyGig(
	ctx context.Context,
	database NotifyGigStore,
	emailClient EmailClient,
	cfg *config.Config,
	logger *zap.Logger,
	gigID string,
) (*NotifyResult, error) {
	logger.Info("Starting gig notification", zap.String("gig_id", gigID))

	gig, err := database.GetGig(ctx, gigID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gig: %w", err)
	}

	members, err := database.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	records, err := database.GetAvailability(ctx, gig.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	users, err := database.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	emailByUID := make(map[string]string)
	for _, user := range users {
		if user.Email != "" {
			emailByUID[user.UID] = user.Email
		}
	}

	subject := fmt.Sprintf("Availability needed: %s on %s", gig.Title, gig.Date)

	result := &NotifyResult{Gig: *gig}
	for _, member := range members {
		if _, responded := records[member.ID]; responded {
			continue
		}

		email, ok := emailByUID[member.ID]
		if !ok {
			logger.Warn("Member has no linked account email",
				zap.String("member_id", member.ID),
				zap.String("member_name", member.Name))
			result.SkippedNoEmail = append(result.SkippedNoEmail, member.Name)
			continue
		}

		body := notificationBody(member.Name, gig, cfg.GmailSender)
		logger.Debug("Sending reminder",
			zap.String("member_id", member.ID),
			zap.String("email", email))

		if err := emailClient.SendEmail(email, subject, body); err != nil {
			logger.Warn("Failed to send reminder",
				zap.String("member_id", member.ID),
				zap.String("email", email),
				zap.Error(err))
			result.Failed = append(result.Failed, FailedNotification{
				MemberName: member.Name,
				Email:      email,
				Error:      err.Error(),
			})
			continue
		}

		result.Sent = append(result.Sent, SentNotification{
			MemberName: member.Name,
			Email:      email,
		})
	}

	logger.Info("Gig notification completed",
		zap.String("gig_id", gig.ID),
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("skipped", len(result.SkippedNoEmail)))

	return result, nil
}

func notificationBody(memberName string, gig *model.Gig, sender string) string {
	body := fmt.Sprintf("Hi %s,\n\nWe still need your availability for %s on %s.",
		memberName, gig.Title, gig.Date)
	if gig.Venue != "" {
		body += fmt.Sprintf("\nVenue: %s", gig.Venue)
	}
	body += "\n\nPlease let us know whether you can make it.\n"
	if sender != "" {
		body += fmt.Sprintf("\n%s\n", sender)
	}
	return body
}
