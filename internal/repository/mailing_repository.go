package repository

import (
	"database/sql"
	"fmt"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/model"
)

type MailingRepositoryInterface interface {
	Create(m *model.Mailing, recipientIDs []int) error
	GetByID(id int) (*model.Mailing, error)
	Update(m *model.Mailing) error
	SetRecipients(mailingID int, recipientIDs []int) error
	Delete(id int) error
	ListMailings(offset, limit int, ownerID int, isManager bool) ([]*model.Mailing, int, error)
	UpdateDispatchState(m *model.Mailing) error
	CountAll() (int, error)
	CountByStatus(status string) (int, error)
}

type MailingRepository struct {
	DB *sql.DB
}

// ====================== Mailing CRUD ======================

func (r *MailingRepository) Create(m *model.Mailing, recipientIDs []int) error {
	if m.Status == "" {
		m.Status = model.MailingStatusCreated
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO mailings (first_sent_at, end_at, status, message_id, owner_id, total_sent, successful_sends, failed_sends)
        VALUES ($1, $2, $3, $4, $5, 0, 0, 0)
        RETURNING id
    `
	if err := tx.QueryRow(query, m.FirstSentAt, m.EndAt, m.Status, m.MessageID, m.OwnerID).Scan(&m.ID); err != nil {
		return err
	}

	for _, recipientID := range recipientIDs {
		if _, err := tx.Exec(
			`INSERT INTO mailing_recipients (mailing_id, recipient_id) VALUES ($1, $2)`,
			m.ID, recipientID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MailingRepository) GetByID(id int) (*model.Mailing, error) {
	query := `
        SELECT id, first_sent_at, end_at, status, message_id, owner_id, total_sent, successful_sends, failed_sends
        FROM mailings WHERE id=$1
    `
	var m model.Mailing
	err := r.DB.QueryRow(query, id).Scan(
		&m.ID, &m.FirstSentAt, &m.EndAt, &m.Status, &m.MessageID,
		&m.OwnerID, &m.TotalSent, &m.SuccessfulSends, &m.FailedSends,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewMailingNotFound(id)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MailingRepository) Update(m *model.Mailing) error {
	query := `
        UPDATE mailings
        SET end_at=$1, status=$2, message_id=$3
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, m.EndAt, m.Status, m.MessageID, m.ID)
	return err
}

func (r *MailingRepository) SetRecipients(mailingID int, recipientIDs []int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM mailing_recipients WHERE mailing_id=$1`, mailingID); err != nil {
		return err
	}
	for _, recipientID := range recipientIDs {
		if _, err := tx.Exec(
			`INSERT INTO mailing_recipients (mailing_id, recipient_id) VALUES ($1, $2)`,
			mailingID, recipientID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete cascades to mailing_recipients and send_attempts.
func (r *MailingRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM mailings WHERE id=$1`, id)
	return err
}

func (r *MailingRepository) ListMailings(offset, limit int, ownerID int, isManager bool) ([]*model.Mailing, int, error) {
	mailings := []*model.Mailing{}
	query := `
        SELECT id, first_sent_at, end_at, status, message_id, owner_id, total_sent, successful_sends, failed_sends
        FROM mailings WHERE 1=1
    `
	args := []interface{}{}
	argPos := 1

	if !isManager {
		query += fmt.Sprintf(" AND owner_id=$%d", argPos)
		args = append(args, ownerID)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		m := &model.Mailing{}
		if err := rows.Scan(
			&m.ID, &m.FirstSentAt, &m.EndAt, &m.Status, &m.MessageID,
			&m.OwnerID, &m.TotalSent, &m.SuccessfulSends, &m.FailedSends,
		); err != nil {
			return nil, 0, err
		}
		mailings = append(mailings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM mailings WHERE 1=1`
	argsCount := []interface{}{}
	if !isManager {
		countQuery += " AND owner_id=$1"
		argsCount = append(argsCount, ownerID)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return mailings, total, nil
}

// ====================== Dispatch state ======================

// UpdateDispatchState persists the aggregate counters, status and
// first_sent_at after a dispatch pass. The values are absolute (read at
// load time, incremented in memory): concurrent passes on the same
// mailing can lose counter updates, an inherited limitation.
func (r *MailingRepository) UpdateDispatchState(m *model.Mailing) error {
	query := `
        UPDATE mailings
        SET status=$1, first_sent_at=$2, total_sent=$3, successful_sends=$4, failed_sends=$5
        WHERE id=$6
    `
	_, err := r.DB.Exec(query, m.Status, m.FirstSentAt, m.TotalSent, m.SuccessfulSends, m.FailedSends, m.ID)
	return err
}

// ====================== Dashboard counts ======================

func (r *MailingRepository) CountAll() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM mailings`).Scan(&count)
	return count, err
}

func (r *MailingRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM mailings WHERE status=$1`, status).Scan(&count)
	return count, err
}

var _ MailingRepositoryInterface = (*MailingRepository)(nil)
