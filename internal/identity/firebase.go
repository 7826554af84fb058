package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
)

// listPageSize is the largest page the Auth API hands out.
const listPageSize = 1000

// FirebaseDirectory is a Directory backed by Firebase Authentication.
type FirebaseDirectory struct {
	client *auth.Client
}

func NewFirebaseDirectory(client *auth.Client) *FirebaseDirectory {
	return &FirebaseDirectory{client: client}
}

func (d *FirebaseDirectory) CreateUser(ctx context.Context, u NewUser) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(u.Email).
		EmailVerified(false).
		Password(u.Password).
		DisplayName(u.DisplayName).
		Disabled(false)
	if u.PhoneNumber != "" {
		params = params.PhoneNumber(u.PhoneNumber)
	}
	if u.PhotoURL != "" {
		params = params.PhotoURL(u.PhotoURL)
	}

	rec, err := d.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return rec.UID, nil
}

func (d *FirebaseDirectory) GetUser(ctx context.Context, uid string) (*Record, error) {
	rec, err := d.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}
	return fromUserRecord(rec), nil
}

func (d *FirebaseDirectory) UpdateUser(ctx context.Context, uid string, c UserChanges) error {
	params := &auth.UserToUpdate{}
	if c.Email != nil {
		params = params.Email(*c.Email)
	}
	if c.Password != nil {
		params = params.Password(*c.Password)
	}
	if c.DisplayName != nil {
		params = params.DisplayName(*c.DisplayName)
	}
	if c.PhoneNumber != nil {
		params = params.PhoneNumber(*c.PhoneNumber)
	}
	if c.PhotoURL != nil {
		params = params.PhotoURL(*c.PhotoURL)
	}

	if _, err := d.client.UpdateUser(ctx, uid, params); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user %s: %w", uid, err)
	}
	return nil
}

func (d *FirebaseDirectory) DeleteUser(ctx context.Context, uid string) error {
	if err := d.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user %s: %w", uid, err)
	}
	return nil
}

func (d *FirebaseDirectory) ListUsers(ctx context.Context) ([]Record, error) {
	pager := iterator.NewPager(d.client.Users(ctx, ""), listPageSize, "")

	var out []Record
	for {
		var page []*auth.ExportedUserRecord
		next, err := pager.NextPage(&page)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		for _, u := range page {
			rec := fromUserRecord(u.UserRecord)
			rec.PasswordHash = u.PasswordHash
			rec.PasswordSalt = u.PasswordSalt
			out = append(out, *rec)
		}
		if next == "" {
			return out, nil
		}
	}
}

func fromUserRecord(u *auth.UserRecord) *Record {
	rec := &Record{Disabled: u.Disabled}
	if u.UserInfo != nil {
		rec.UID = u.UID
		rec.Email = u.Email
		rec.PhoneNumber = u.PhoneNumber
		rec.DisplayName = u.DisplayName
		rec.PhotoURL = u.PhotoURL
	}
	return rec
}
