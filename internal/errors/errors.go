// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrMailingNotFound is a sentinel error
type ErrMailingNotFound struct {
	MailingID int
}

func (e *ErrMailingNotFound) Error() string {
	return fmt.Sprintf("mailing with ID %d not found", e.MailingID)
}

// Helper constructor
func NewMailingNotFound(id int) error {
	return &ErrMailingNotFound{MailingID: id}
}

// ErrMailingNotRunning is returned by the scheduled trigger when a mailing
// exists but is not in the running status. The interactive trigger has no
// such guard.
type ErrMailingNotRunning struct {
	MailingID int
	Status    string
}

func (e *ErrMailingNotRunning) Error() string {
	return fmt.Sprintf("mailing with ID %d is not running (current status: %s)", e.MailingID, e.Status)
}

func NewMailingNotRunning(id int, status string) error {
	return &ErrMailingNotRunning{MailingID: id, Status: status}
}

// ErrRecipientNotFound is returned when a recipient ID does not resolve.
type ErrRecipientNotFound struct {
	RecipientID int
}

func (e *ErrRecipientNotFound) Error() string {
	return fmt.Sprintf("recipient with ID %d not found", e.RecipientID)
}

func NewRecipientNotFound(id int) error {
	return &ErrRecipientNotFound{RecipientID: id}
}

// ErrMessageNotFound is returned when a message ID does not resolve.
type ErrMessageNotFound struct {
	MessageID int
}

func (e *ErrMessageNotFound) Error() string {
	return fmt.Sprintf("message with ID %d not found", e.MessageID)
}

func NewMessageNotFound(id int) error {
	return &ErrMessageNotFound{MessageID: id}
}

// ErrUserNotFound is returned when a user ID or email does not resolve.
type ErrUserNotFound struct {
	UserID int
	Email  string
}

func (e *ErrUserNotFound) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("user with email %s not found", e.Email)
	}
	return fmt.Sprintf("user with ID %d not found", e.UserID)
}

func NewUserNotFound(id int) error {
	return &ErrUserNotFound{UserID: id}
}

func NewUserNotFoundByEmail(email string) error {
	return &ErrUserNotFound{Email: email}
}

// ErrEmailTaken is a validation error: a recipient or user email already exists.
type ErrEmailTaken struct {
	Email string
}

func (e *ErrEmailTaken) Error() string {
	return fmt.Sprintf("email %s is already taken", e.Email)
}

func NewEmailTaken(email string) error {
	return &ErrEmailTaken{Email: email}
}

// Account lifecycle sentinels.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserInactive       = errors.New("user account is not activated")
	ErrUserBlocked        = errors.New("user account is blocked")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
)
