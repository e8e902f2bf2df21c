// internal/service/stats_service.go
package service

import (
	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/repository"
)

// StatsService backs the home dashboard: managers get fleet-wide counts,
// everyone else gets their own attempt totals.
type StatsService struct {
	MailingRepo   repository.MailingRepositoryInterface
	RecipientRepo repository.RecipientRepositoryInterface
	AttemptRepo   repository.SendAttemptRepositoryInterface
}

func (s *StatsService) HomeStats(actorID int, isManager bool) (map[string]int, error) {
	stats := map[string]int{}

	if isManager {
		totalMailings, err := s.MailingRepo.CountAll()
		if err != nil {
			return nil, err
		}
		activeMailings, err := s.MailingRepo.CountByStatus(model.MailingStatusRunning)
		if err != nil {
			return nil, err
		}
		uniqueRecipients, err := s.RecipientRepo.CountUniqueEmails()
		if err != nil {
			return nil, err
		}
		stats["total_mailings"] = totalMailings
		stats["active_mailings"] = activeMailings
		stats["unique_recipients"] = uniqueRecipients
		return stats, nil
	}

	successful, err := s.AttemptRepo.CountByOwnerAndStatus(actorID, model.AttemptStatusSuccess)
	if err != nil {
		return nil, err
	}
	failed, err := s.AttemptRepo.CountByOwnerAndStatus(actorID, model.AttemptStatusFailure)
	if err != nil {
		return nil, err
	}
	sent, err := s.AttemptRepo.CountByOwner(actorID)
	if err != nil {
		return nil, err
	}
	stats["successful_attempts"] = successful
	stats["failed_attempts"] = failed
	stats["sent_messages"] = sent
	return stats, nil
}
