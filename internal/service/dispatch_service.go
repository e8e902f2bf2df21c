// internal/service/dispatch_service.go
package service

import (
	"time"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/mailer"
	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/repository"
)

// SuccessResponse is the server_response recorded for a delivered attempt.
const SuccessResponse = "email sent successfully"

// DispatchService executes one send pass over a mailing's recipients:
// strictly sequential, one blocking transport call per recipient, one
// append-only attempt row per recipient per pass.
type DispatchService struct {
	MailingRepo   repository.MailingRepositoryInterface
	MessageRepo   repository.MessageRepositoryInterface
	RecipientRepo repository.RecipientRepositoryInterface
	AttemptRepo   repository.SendAttemptRepositoryInterface
	Transport     mailer.Transport
	FromAddress   string

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
	Log *zap.Logger
}

// DispatchResult reports one pass's totals and the resulting status.
type DispatchResult struct {
	MailingID       int    `json:"mailing_id"`
	TotalSent       int    `json:"total_sent"`
	SuccessfulSends int    `json:"successful_sends"`
	FailedSends     int    `json:"failed_sends"`
	Status          string `json:"status"`
}

// Run is the interactive trigger: it executes a pass regardless of the
// mailing's current status and stamps the triggering actor on attempt rows.
func (s *DispatchService) Run(mailingID int, actorID *int) (*DispatchResult, error) {
	return s.run(mailingID, actorID, false)
}

// RunScheduled is the scheduled/operator trigger: it refuses to send unless
// the mailing is currently running, and leaves attempt rows unowned.
func (s *DispatchService) RunScheduled(mailingID int) (*DispatchResult, error) {
	return s.run(mailingID, nil, true)
}

func (s *DispatchService) run(mailingID int, actorID *int, requireRunning bool) (*DispatchResult, error) {
	mailing, err := s.MailingRepo.GetByID(mailingID)
	if err != nil {
		return nil, err
	}
	if requireRunning && mailing.Status != model.MailingStatusRunning {
		return nil, appErrors.NewMailingNotRunning(mailingID, mailing.Status)
	}

	message, err := s.MessageRepo.GetByID(mailing.MessageID)
	if err != nil {
		return nil, err
	}
	recipients, err := s.RecipientRepo.ListByMailing(mailingID)
	if err != nil {
		return nil, err
	}

	totalSent := 0
	successfulSends := 0
	failedSends := 0

	for _, recipient := range recipients {
		status := model.AttemptStatusSuccess
		serverResponse := SuccessResponse

		if err := s.Transport.Send(message.Subject, message.Body, s.FromAddress, []string{recipient.Email}); err != nil {
			// A single recipient's failure never aborts the batch.
			status = model.AttemptStatusFailure
			serverResponse = err.Error()
			failedSends++
			s.logger().Warn("⚠️ send failed",
				zap.Int("mailing_id", mailing.ID),
				zap.String("recipient", recipient.Email),
				zap.Error(err),
			)
		} else {
			successfulSends++
		}
		totalSent++

		recipientID := recipient.ID
		messageID := mailing.MessageID
		attempt := &model.SendAttempt{
			Status:         status,
			ServerResponse: serverResponse,
			MailingID:      mailing.ID,
			RecipientID:    &recipientID,
			MessageID:      &messageID,
			OwnerID:        actorID,
		}
		if err := s.AttemptRepo.Create(attempt); err != nil {
			s.logger().Error("failed to record send attempt",
				zap.Int("mailing_id", mailing.ID),
				zap.String("recipient", recipient.Email),
				zap.Error(err),
			)
		}
	}

	// Counters accumulate across passes: read at load, incremented here,
	// written back after the loop. The aggregate write is not atomic with
	// the per-attempt inserts, and concurrent passes can lose updates.
	mailing.TotalSent += totalSent
	mailing.SuccessfulSends += successfulSends
	mailing.FailedSends += failedSends

	now := s.now()
	if mailing.FirstSentAt == nil {
		firstSent := now
		mailing.FirstSentAt = &firstSent
	}
	if mailing.Status == model.MailingStatusCreated {
		mailing.Status = model.MailingStatusRunning
	}
	if mailing.EndAt != nil && now.After(*mailing.EndAt) {
		mailing.Status = model.MailingStatusFinished
	}

	if err := s.MailingRepo.UpdateDispatchState(mailing); err != nil {
		return nil, err
	}

	s.logger().Info("✅ dispatch pass completed",
		zap.Int("mailing_id", mailing.ID),
		zap.Int("total_sent", totalSent),
		zap.Int("successful", successfulSends),
		zap.Int("failed", failedSends),
		zap.String("status", mailing.Status),
	)

	return &DispatchResult{
		MailingID:       mailing.ID,
		TotalSent:       totalSent,
		SuccessfulSends: successfulSends,
		FailedSends:     failedSends,
		Status:          mailing.Status,
	}, nil
}

func (s *DispatchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DispatchService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
