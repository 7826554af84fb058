// Package identity wraps the user directory (Firebase Authentication).
package identity

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// Record is a directory entry. Optional fields are empty when unset.
type Record struct {
	UID          string
	Email        string
	PhoneNumber  string
	DisplayName  string
	PhotoURL     string
	PasswordHash string
	PasswordSalt string
	Disabled     bool
}

// NewUser holds the fields for a new account. Empty PhoneNumber or PhotoURL
// means the attribute is not set.
type NewUser struct {
	Email       string
	Password    string
	DisplayName string
	PhoneNumber string
	PhotoURL    string
}

// UserChanges lists fields to change; nil leaves the field untouched and a
// pointer to "" clears it (password and email cannot be cleared).
type UserChanges struct {
	Email       *string
	Password    *string
	DisplayName *string
	PhoneNumber *string
	PhotoURL    *string
}

func (c UserChanges) Empty() bool {
	return c.Email == nil && c.Password == nil && c.DisplayName == nil && c.PhoneNumber == nil && c.PhotoURL == nil
}

type Directory interface {
	CreateUser(ctx context.Context, u NewUser) (string, error)
	// GetUser returns ErrUserNotFound for unknown ids.
	GetUser(ctx context.Context, uid string) (*Record, error)
	UpdateUser(ctx context.Context, uid string, changes UserChanges) error
	DeleteUser(ctx context.Context, uid string) error
	// ListUsers walks every page of the directory.
	ListUsers(ctx context.Context) ([]Record, error)
}
