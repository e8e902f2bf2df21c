// internal/service/recipient_service.go
package service

import (
	"strings"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/repository"
)

type RecipientService struct {
	RecipientRepo repository.RecipientRepositoryInterface
}

func (s *RecipientService) CreateRecipient(ownerID int, email, fullName, comment string) (*model.Recipient, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, appErrors.ErrInvalidEmail
	}

	rec := &model.Recipient{
		Email:    email,
		FullName: fullName,
		Comment:  comment,
		OwnerID:  &ownerID,
	}
	if err := s.RecipientRepo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecipientService) GetRecipient(id int) (*model.Recipient, error) {
	return s.RecipientRepo.GetByID(id)
}

func (s *RecipientService) UpdateRecipient(id int, email, fullName, comment string) (*model.Recipient, error) {
	rec, err := s.RecipientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, appErrors.ErrInvalidEmail
	}
	rec.Email = email
	rec.FullName = fullName
	rec.Comment = comment

	if err := s.RecipientRepo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecipientService) DeleteRecipient(id int) error {
	if _, err := s.RecipientRepo.GetByID(id); err != nil {
		return err
	}
	return s.RecipientRepo.Delete(id)
}

func (s *RecipientService) ListRecipients(ownerID int, isManager bool) ([]model.Recipient, error) {
	return s.RecipientRepo.List(ownerID, isManager)
}
