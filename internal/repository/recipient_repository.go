package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/model"
)

// RecipientRepositoryInterface defines methods used by services
type RecipientRepositoryInterface interface {
	Create(r *model.Recipient) error
	GetByID(id int) (*model.Recipient, error)
	Update(r *model.Recipient) error
	Delete(id int) error
	List(ownerID int, isManager bool) ([]model.Recipient, error)
	ListByMailing(mailingID int) ([]model.Recipient, error)
	CountUniqueEmails() (int, error)
}

// RecipientRepository is the concrete implementation
type RecipientRepository struct {
	DB *sql.DB
}

func (r *RecipientRepository) Create(rec *model.Recipient) error {
	query := `
        INSERT INTO recipients (email, full_name, comment, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.DB.QueryRow(query, rec.Email, rec.FullName, rec.Comment, rec.OwnerID).Scan(&rec.ID)
	return mapUniqueViolation(err, rec.Email)
}

func (r *RecipientRepository) GetByID(id int) (*model.Recipient, error) {
	query := `
        SELECT id, email, full_name, comment, owner_id
        FROM recipients WHERE id=$1
    `
	var rec model.Recipient
	err := r.DB.QueryRow(query, id).Scan(&rec.ID, &rec.Email, &rec.FullName, &rec.Comment, &rec.OwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewRecipientNotFound(id)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecipientRepository) Update(rec *model.Recipient) error {
	query := `
        UPDATE recipients
        SET email=$1, full_name=$2, comment=$3
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, rec.Email, rec.FullName, rec.Comment, rec.ID)
	return mapUniqueViolation(err, rec.Email)
}

// Delete cascades to mailing_recipients and send_attempts rows.
func (r *RecipientRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM recipients WHERE id=$1`, id)
	return err
}

// List returns recipients ordered by email. Managers see every owner's rows.
func (r *RecipientRepository) List(ownerID int, isManager bool) ([]model.Recipient, error) {
	query := `
        SELECT id, email, full_name, comment, owner_id
        FROM recipients
    `
	args := []interface{}{}
	if !isManager {
		query += ` WHERE owner_id=$1`
		args = append(args, ownerID)
	}
	query += ` ORDER BY email`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.FullName, &rec.Comment, &rec.OwnerID); err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}

// ListByMailing returns a mailing's recipient set in the stored order.
func (r *RecipientRepository) ListByMailing(mailingID int) ([]model.Recipient, error) {
	query := `
        SELECT r.id, r.email, r.full_name, r.comment, r.owner_id
        FROM recipients r
        JOIN mailing_recipients mr ON mr.recipient_id = r.id
        WHERE mr.mailing_id = $1
        ORDER BY r.email
    `
	rows, err := r.DB.Query(query, mailingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.FullName, &rec.Comment, &rec.OwnerID); err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}

func (r *RecipientRepository) CountUniqueEmails() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(DISTINCT email) FROM recipients`).Scan(&count)
	return count, err
}

// mapUniqueViolation turns a Postgres unique violation into the validation error
// surfaced to the caller.
func mapUniqueViolation(err error, email string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return appErrors.NewEmailTaken(email)
	}
	return err
}

var _ RecipientRepositoryInterface = (*RecipientRepository)(nil)
