package identity

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryDirectory keeps accounts in process. Passwords are kept only to
// mirror the write-only contract; they are never returned.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]Record

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: map[string]Record{}}
}

// Add seeds an account with a fixed uid.
func (d *MemoryDirectory) Add(rec Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[rec.UID] = rec
}

func (d *MemoryDirectory) CreateUser(_ context.Context, u NewUser) (string, error) {
	if d.FailWith != nil {
		return "", d.FailWith
	}
	if u.Email == "" || len(u.Password) < 6 {
		return "", errors.New("email and a password of at least 6 characters are required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.users {
		if existing.Email == u.Email {
			return "", errors.New("email already exists")
		}
	}

	uid := uuid.NewString()
	d.users[uid] = Record{
		UID:         uid,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhoneNumber: u.PhoneNumber,
		PhotoURL:    u.PhotoURL,
	}
	return uid, nil
}

func (d *MemoryDirectory) GetUser(_ context.Context, uid string) (*Record, error) {
	if d.FailWith != nil {
		return nil, d.FailWith
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, ok := d.users[uid]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &rec, nil
}

func (d *MemoryDirectory) UpdateUser(_ context.Context, uid string, c UserChanges) error {
	if d.FailWith != nil {
		return d.FailWith
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.users[uid]
	if !ok {
		return ErrUserNotFound
	}
	if c.Email != nil {
		rec.Email = *c.Email
	}
	if c.DisplayName != nil {
		rec.DisplayName = *c.DisplayName
	}
	if c.PhoneNumber != nil {
		rec.PhoneNumber = *c.PhoneNumber
	}
	if c.PhotoURL != nil {
		rec.PhotoURL = *c.PhotoURL
	}
	d.users[uid] = rec
	return nil
}

func (d *MemoryDirectory) DeleteUser(_ context.Context, uid string) error {
	if d.FailWith != nil {
		return d.FailWith
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[uid]; !ok {
		return ErrUserNotFound
	}
	delete(d.users, uid)
	return nil
}

func (d *MemoryDirectory) ListUsers(_ context.Context) ([]Record, error) {
	if d.FailWith != nil {
		return nil, d.FailWith
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Record, 0, len(d.users))
	for _, rec := range d.users {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}
