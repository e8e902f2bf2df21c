package repository

import (
	"database/sql"
	"time"

	"github.com/unclebandit/mailflow-backend/internal/model"
)

// SendAttemptRepositoryInterface is append-only: attempts are never
// updated or deleted by normal operation.
type SendAttemptRepositoryInterface interface {
	Create(a *model.SendAttempt) error
	ListByMailing(mailingID int) ([]model.SendAttempt, error)
	CountByOwnerAndStatus(ownerID int, status string) (int, error)
	CountByOwner(ownerID int) (int, error)
}

type SendAttemptRepository struct {
	DB *sql.DB
}

func (r *SendAttemptRepository) Create(a *model.SendAttempt) error {
	a.AttemptTime = time.Now()
	query := `
        INSERT INTO send_attempts (attempt_time, status, server_response, mailing_id, recipient_id, message_id, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		a.AttemptTime,
		a.Status,
		a.ServerResponse,
		a.MailingID,
		a.RecipientID,
		a.MessageID,
		a.OwnerID,
	).Scan(&a.ID)
}

func (r *SendAttemptRepository) ListByMailing(mailingID int) ([]model.SendAttempt, error) {
	query := `
        SELECT id, attempt_time, status, server_response, mailing_id, recipient_id, message_id, owner_id
        FROM send_attempts
        WHERE mailing_id=$1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, mailingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []model.SendAttempt{}
	for rows.Next() {
		var a model.SendAttempt
		if err := rows.Scan(
			&a.ID, &a.AttemptTime, &a.Status, &a.ServerResponse,
			&a.MailingID, &a.RecipientID, &a.MessageID, &a.OwnerID,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (r *SendAttemptRepository) CountByOwnerAndStatus(ownerID int, status string) (int, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM send_attempts WHERE owner_id=$1 AND status=$2`,
		ownerID, status,
	).Scan(&count)
	return count, err
}

func (r *SendAttemptRepository) CountByOwner(ownerID int) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM send_attempts WHERE owner_id=$1`, ownerID).Scan(&count)
	return count, err
}

var _ SendAttemptRepositoryInterface = (*SendAttemptRepository)(nil)
