// internal/model/message.go
package model

type Message struct {
	ID      int    `db:"id" json:"id"`
	Subject string `db:"subject" json:"subject"`
	Body    string `db:"body" json:"body"`
	OwnerID *int   `db:"owner_id" json:"owner_id,omitempty"`
}
