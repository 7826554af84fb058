package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/if-project/agenda-backend/internal/identity"
	"github.com/if-project/agenda-backend/internal/users/domain"
)

func strPtr(s string) *string { return &s }

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"(11) 98765-4321", "+5511987654321", true},
		{"+55 21 99876-5432", "+5521998765432", true},
		{"+1 650-253-0000", "+16502530000", true},
		{"123", "", false},
		{"not a phone", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in, "BR")
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	dir := identity.NewMemoryDirectory()
	svc := NewUserService(dir, "BR")

	t.Run("normalizes phone", func(t *testing.T) {
		uid, err := svc.CreateUser(ctx, &domain.CreateUserRequest{
			Email:       "ana@example.com",
			Password:    "secret123",
			DisplayName: "Ana",
			PhoneNumber: strPtr("(11) 98765-4321"),
		})
		require.NoError(t, err)

		rec, err := dir.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "+5511987654321", rec.PhoneNumber)
	})

	t.Run("invalid phone is stored absent", func(t *testing.T) {
		uid, err := svc.CreateUser(ctx, &domain.CreateUserRequest{
			Email:       "bia@example.com",
			Password:    "secret123",
			DisplayName: "Bia",
			PhoneNumber: strPtr("12"),
		})
		require.NoError(t, err)

		rec, err := dir.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Empty(t, rec.PhoneNumber)
	})

	t.Run("requires credentials", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, &domain.CreateUserRequest{Email: "x@example.com"})
		var verr *domain.ValidationError
		assert.True(t, errors.As(err, &verr))
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	dir := identity.NewMemoryDirectory()
	dir.Add(identity.Record{UID: "u1", Email: "u1@example.com", DisplayName: "Old", PhoneNumber: "+5511987654321", PhotoURL: "https://img/1"})
	svc := NewUserService(dir, "BR")

	t.Run("only supplied fields change", func(t *testing.T) {
		require.NoError(t, svc.UpdateUser(ctx, "u1", &domain.UpdateUserRequest{DisplayName: strPtr("New")}))

		rec, _ := dir.GetUser(ctx, "u1")
		assert.Equal(t, "New", rec.DisplayName)
		assert.Equal(t, "+5511987654321", rec.PhoneNumber)
		assert.Equal(t, "https://img/1", rec.PhotoURL)
	})

	t.Run("empty photo clears it", func(t *testing.T) {
		require.NoError(t, svc.UpdateUser(ctx, "u1", &domain.UpdateUserRequest{PhotoURL: strPtr("")}))

		rec, _ := dir.GetUser(ctx, "u1")
		assert.Empty(t, rec.PhotoURL)
	})

	t.Run("invalid phone leaves number untouched", func(t *testing.T) {
		err := svc.UpdateUser(ctx, "u1", &domain.UpdateUserRequest{PhoneNumber: strPtr("99"), DisplayName: strPtr("Again")})
		require.NoError(t, err)

		rec, _ := dir.GetUser(ctx, "u1")
		assert.Equal(t, "+5511987654321", rec.PhoneNumber)
	})

	t.Run("nothing to update", func(t *testing.T) {
		err := svc.UpdateUser(ctx, "u1", &domain.UpdateUserRequest{})
		var verr *domain.ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.UpdateUser(ctx, "ghost", &domain.UpdateUserRequest{DisplayName: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	dir := identity.NewMemoryDirectory()
	dir.Add(identity.Record{UID: "u1", Email: "u1@example.com"})
	svc := NewUserService(dir, "BR")

	assert.ErrorIs(t, svc.DeleteUser(ctx, "ghost"), domain.ErrUserNotFound)
	require.NoError(t, svc.DeleteUser(ctx, "u1"))
	_, err := dir.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}

func TestUserService_UpstreamFailure(t *testing.T) {
	dir := identity.NewMemoryDirectory()
	dir.FailWith = errors.New("identity unavailable")
	svc := NewUserService(dir, "BR")

	err := svc.DeleteUser(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	assert.Contains(t, err.Error(), "identity unavailable")
}
