package service_test

import (
	"errors"
	"testing"
	"time"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/service"
)

func newMailingFixture(mailings ...*model.Mailing) (*service.MailingService, *MockMailingRepo) {
	mailingRepo := &MockMailingRepo{mailings: map[int]*model.Mailing{}}
	for _, m := range mailings {
		mailingRepo.mailings[m.ID] = m
	}
	messageRepo := &MockMessageRepo{messages: map[int]*model.Message{
		1: {ID: 1, Subject: "Hello", Body: "World"},
		2: {ID: 2, Subject: "Update", Body: "News"},
	}}
	svc := &service.MailingService{
		MailingRepo: mailingRepo,
		MessageRepo: messageRepo,
		AttemptRepo: &MockAttemptRepo{},
	}
	return svc, mailingRepo
}

func TestCreateMailingRejectsUnknownMessage(t *testing.T) {
	svc, _ := newMailingFixture()

	_, err := svc.CreateMailing(1, service.MailingInput{MessageID: 99})
	var notFound *appErrors.ErrMessageNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestCreateMailingStartsCreated(t *testing.T) {
	svc, repo := newMailingFixture()

	m, err := svc.CreateMailing(5, service.MailingInput{MessageID: 1, RecipientIDs: []int{1, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != model.MailingStatusCreated {
		t.Errorf("expected status created, got %s", m.Status)
	}
	if m.OwnerID == nil || *m.OwnerID != 5 {
		t.Errorf("expected owner 5, got %v", m.OwnerID)
	}
	if _, ok := repo.mailings[m.ID]; !ok {
		t.Error("expected mailing to be persisted")
	}
}

func TestRescheduleReopensFinishedMailing(t *testing.T) {
	oldEnd := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, repo := newMailingFixture(&model.Mailing{
		ID: 1, Status: model.MailingStatusFinished, MessageID: 1, EndAt: &oldEnd,
	})

	newEnd := oldEnd.Add(24 * time.Hour)
	m, err := svc.UpdateMailing(1, service.MailingInput{MessageID: 1, EndAt: &newEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != model.MailingStatusRunning {
		t.Errorf("expected running after end_at change, got %s", m.Status)
	}
	if repo.mailings[1].Status != model.MailingStatusRunning {
		t.Errorf("expected persisted status running, got %s", repo.mailings[1].Status)
	}
}

func TestRescheduleClearingEndAtReopens(t *testing.T) {
	oldEnd := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newMailingFixture(&model.Mailing{
		ID: 1, Status: model.MailingStatusFinished, MessageID: 1, EndAt: &oldEnd,
	})

	m, err := svc.UpdateMailing(1, service.MailingInput{MessageID: 1, EndAt: nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != model.MailingStatusRunning {
		t.Errorf("expected running after clearing end_at, got %s", m.Status)
	}
	if m.EndAt != nil {
		t.Errorf("expected end_at cleared, got %v", m.EndAt)
	}
}

func TestSameEndAtKeepsStatus(t *testing.T) {
	end := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newMailingFixture(&model.Mailing{
		ID: 1, Status: model.MailingStatusFinished, MessageID: 1, EndAt: &end,
	})

	sameEnd := end
	m, err := svc.UpdateMailing(1, service.MailingInput{MessageID: 1, EndAt: &sameEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != model.MailingStatusFinished {
		t.Errorf("expected status untouched, got %s", m.Status)
	}
}

func TestUpdateWithoutEndAtChangeKeepsStatus(t *testing.T) {
	svc, _ := newMailingFixture(&model.Mailing{
		ID: 1, Status: model.MailingStatusCreated, MessageID: 1,
	})

	m, err := svc.UpdateMailing(1, service.MailingInput{MessageID: 2, EndAt: nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != model.MailingStatusCreated {
		t.Errorf("expected status created, got %s", m.Status)
	}
	if m.MessageID != 2 {
		t.Errorf("expected message swap, got %d", m.MessageID)
	}
}

func TestListMailingsPagination(t *testing.T) {
	svc, repo := newMailingFixture()
	for i := 1; i <= 5; i++ {
		owner := 1
		repo.mailings[i] = &model.Mailing{ID: i, Status: model.MailingStatusCreated, MessageID: 1, OwnerID: &owner}
	}

	mailings, pagination, err := svc.ListMailings(2, 2, 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailings) != 2 {
		t.Errorf("expected 2 mailings on page 2, got %d", len(mailings))
	}
	if pagination["total_count"] != 5 {
		t.Errorf("expected total_count 5, got %d", pagination["total_count"])
	}
	if pagination["total_pages"] != 3 {
		t.Errorf("expected total_pages 3, got %d", pagination["total_pages"])
	}
	if pagination["page"] != 2 || pagination["page_size"] != 2 {
		t.Errorf("unexpected pagination echo: %v", pagination)
	}
}

func TestListAttemptsRequiresExistingMailing(t *testing.T) {
	svc, _ := newMailingFixture()

	_, err := svc.ListAttempts(404)
	var notFound *appErrors.ErrMailingNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrMailingNotFound, got %v", err)
	}
}
