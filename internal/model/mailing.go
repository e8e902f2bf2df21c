// internal/model/mailing.go
package model

import "time"

// Mailing statuses. A mailing only ever moves forward through these,
// except for the manual reopen on an end_at edit.
const (
	MailingStatusCreated  = "created"
	MailingStatusRunning  = "running"
	MailingStatusFinished = "finished"
)

type Mailing struct {
	ID              int        `db:"id" json:"id"`
	FirstSentAt     *time.Time `db:"first_sent_at" json:"first_sent_at,omitempty"`
	EndAt           *time.Time `db:"end_at" json:"end_at,omitempty"`
	Status          string     `db:"status" json:"status"`
	MessageID       int        `db:"message_id" json:"message_id"`
	OwnerID         *int       `db:"owner_id" json:"owner_id,omitempty"`
	TotalSent       int        `db:"total_sent" json:"total_sent"`
	SuccessfulSends int        `db:"successful_sends" json:"successful_sends"`
	FailedSends     int        `db:"failed_sends" json:"failed_sends"`
}
