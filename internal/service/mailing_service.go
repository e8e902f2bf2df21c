// internal/service/mailing_service.go
package service

import (
	"time"

	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/repository"
)

type MailingService struct {
	MailingRepo repository.MailingRepositoryInterface
	MessageRepo repository.MessageRepositoryInterface
	AttemptRepo repository.SendAttemptRepositoryInterface
}

// MailingInput is the create/update payload.
type MailingInput struct {
	MessageID    int
	RecipientIDs []int
	EndAt        *time.Time
}

func (s *MailingService) CreateMailing(ownerID int, in MailingInput) (*model.Mailing, error) {
	// Reject dangling message references up front.
	if _, err := s.MessageRepo.GetByID(in.MessageID); err != nil {
		return nil, err
	}

	m := &model.Mailing{
		Status:    model.MailingStatusCreated,
		MessageID: in.MessageID,
		OwnerID:   &ownerID,
		EndAt:     in.EndAt,
	}
	if err := s.MailingRepo.Create(m, in.RecipientIDs); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMailing applies the reschedule rule: editing end_at to a different
// value forces the mailing back to running, even from finished. Re-saving
// the same end_at, or editing other fields, leaves status untouched.
func (s *MailingService) UpdateMailing(id int, in MailingInput) (*model.Mailing, error) {
	mailing, err := s.MailingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if endAtChanged(mailing.EndAt, in.EndAt) {
		mailing.Status = model.MailingStatusRunning
	}
	mailing.EndAt = in.EndAt

	if in.MessageID != 0 && in.MessageID != mailing.MessageID {
		if _, err := s.MessageRepo.GetByID(in.MessageID); err != nil {
			return nil, err
		}
		mailing.MessageID = in.MessageID
	}

	if err := s.MailingRepo.Update(mailing); err != nil {
		return nil, err
	}
	if in.RecipientIDs != nil {
		if err := s.MailingRepo.SetRecipients(id, in.RecipientIDs); err != nil {
			return nil, err
		}
	}
	return mailing, nil
}

func endAtChanged(old, new *time.Time) bool {
	if old == nil && new == nil {
		return false
	}
	if old == nil || new == nil {
		return true
	}
	return !old.Equal(*new)
}

func (s *MailingService) GetMailing(id int) (*model.Mailing, error) {
	return s.MailingRepo.GetByID(id)
}

func (s *MailingService) DeleteMailing(id int) error {
	if _, err := s.MailingRepo.GetByID(id); err != nil {
		return err
	}
	return s.MailingRepo.Delete(id)
}

// ListMailings fetches mailings with pagination, scoped to the owner
// unless the actor is a manager.
func (s *MailingService) ListMailings(page, pageSize int, ownerID int, isManager bool) ([]model.Mailing, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.MailingRepo.ListMailings(offset, pageSize, ownerID, isManager)
	if err != nil {
		return nil, nil, err
	}

	mailings := make([]model.Mailing, len(ptrs))
	for i, m := range ptrs {
		mailings[i] = *m
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return mailings, pagination, nil
}

// ListAttempts returns the audit log for one mailing, oldest first.
func (s *MailingService) ListAttempts(mailingID int) ([]model.SendAttempt, error) {
	if _, err := s.MailingRepo.GetByID(mailingID); err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByMailing(mailingID)
}
