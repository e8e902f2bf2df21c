package repository

import (
	"database/sql"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/model"
)

// MessageRepositoryInterface defines methods used by services
type MessageRepositoryInterface interface {
	Create(m *model.Message) error
	GetByID(id int) (*model.Message, error)
	Update(m *model.Message) error
	Delete(id int) error
	List(ownerID int, isManager bool) ([]model.Message, error)
}

// MessageRepository is the concrete implementation
type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) Create(m *model.Message) error {
	query := `
        INSERT INTO messages (subject, body, owner_id)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.DB.QueryRow(query, m.Subject, m.Body, m.OwnerID).Scan(&m.ID)
}

func (r *MessageRepository) GetByID(id int) (*model.Message, error) {
	query := `SELECT id, subject, body, owner_id FROM messages WHERE id=$1`
	var m model.Message
	err := r.DB.QueryRow(query, id).Scan(&m.ID, &m.Subject, &m.Body, &m.OwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewMessageNotFound(id)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) Update(m *model.Message) error {
	query := `UPDATE messages SET subject=$1, body=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, m.Subject, m.Body, m.ID)
	return err
}

// Delete cascades to mailings referencing the message.
func (r *MessageRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM messages WHERE id=$1`, id)
	return err
}

// List returns messages ordered by subject. Managers see every owner's rows.
func (r *MessageRepository) List(ownerID int, isManager bool) ([]model.Message, error) {
	query := `SELECT id, subject, body, owner_id FROM messages`
	args := []interface{}{}
	if !isManager {
		query += ` WHERE owner_id=$1`
		args = append(args, ownerID)
	}
	query += ` ORDER BY subject`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Subject, &m.Body, &m.OwnerID); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)
