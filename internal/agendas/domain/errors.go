package domain

import "errors"

var (
	ErrAgendaNotFound     = errors.New("agenda not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrInviteNotFound     = errors.New("invite key not found")
	ErrInviteKeyExhausted = errors.New("could not generate an unused invite key")
)

// ValidationError is a client input problem (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
