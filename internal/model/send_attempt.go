// internal/model/send_attempt.go
package model

import "time"

// SendAttempt statuses.
const (
	AttemptStatusSuccess = "success"
	AttemptStatusFailure = "failure"
)

// SendAttempt is an append-only audit row: one per recipient per dispatch pass.
// Nothing in the codebase updates or deletes these.
type SendAttempt struct {
	ID             int       `db:"id" json:"id"`
	AttemptTime    time.Time `db:"attempt_time" json:"attempt_time"`
	Status         string    `db:"status" json:"status"`
	ServerResponse string    `db:"server_response" json:"server_response"`
	MailingID      int       `db:"mailing_id" json:"mailing_id"`
	RecipientID    *int      `db:"recipient_id" json:"recipient_id,omitempty"`
	MessageID      *int      `db:"message_id" json:"message_id,omitempty"`
	OwnerID        *int      `db:"owner_id" json:"owner_id,omitempty"`
}
