// internal/service/message_service.go
package service

import (
	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/repository"
)

type MessageService struct {
	MessageRepo repository.MessageRepositoryInterface
}

func (s *MessageService) CreateMessage(ownerID int, subject, body string) (*model.Message, error) {
	m := &model.Message{
		Subject: subject,
		Body:    body,
		OwnerID: &ownerID,
	}
	if err := s.MessageRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) GetMessage(id int) (*model.Message, error) {
	return s.MessageRepo.GetByID(id)
}

func (s *MessageService) UpdateMessage(id int, subject, body string) (*model.Message, error) {
	m, err := s.MessageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	m.Subject = subject
	m.Body = body
	if err := s.MessageRepo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) DeleteMessage(id int) error {
	if _, err := s.MessageRepo.GetByID(id); err != nil {
		return err
	}
	return s.MessageRepo.Delete(id)
}

func (s *MessageService) ListMessages(ownerID int, isManager bool) ([]model.Message, error) {
	return s.MessageRepo.List(ownerID, isManager)
}
