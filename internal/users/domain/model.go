package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")

// User is the listing projection of a directory account. Absent optional
// fields render as "".
type User struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	PasswordSalt string `json:"passwordSalt"`
	PhoneNumber  string `json:"phone_number"`
	DisplayName  string `json:"display_name"`
	PhotoURL     string `json:"photo_url"`
}

// CreateUserRequest represents data needed to create a new user
type CreateUserRequest struct {
	Email       string
	Password    string
	DisplayName string
	PhoneNumber *string
	PhotoURL    *string
}

// UpdateUserRequest carries only the fields the caller sent; nil means
// "not provided".
type UpdateUserRequest struct {
	Email       *string
	Password    *string
	DisplayName *string
	PhoneNumber *string
	PhotoURL    *string
}

// ValidationError is a client input problem (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
