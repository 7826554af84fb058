package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/if-project/agenda-backend/internal/identity"
	"github.com/if-project/agenda-backend/internal/logging"
	"github.com/if-project/agenda-backend/internal/users/domain"
)

// UserService manages accounts in the identity directory.
type UserService struct {
	dir    identity.Directory
	region string
}

func NewUserService(dir identity.Directory, defaultRegion string) *UserService {
	return &UserService{dir: dir, region: defaultRegion}
}

// CreateUser creates an account and returns its uid. A phone number that
// does not validate for the default region is dropped, not rejected.
func (s *UserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (string, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.DisplayName) == "" {
		return "", &domain.ValidationError{Message: "email, password e display_name são obrigatórios"}
	}

	nu := identity.NewUser{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	}
	if req.PhoneNumber != nil {
		if phone, ok := NormalizePhone(*req.PhoneNumber, s.region); ok {
			nu.PhoneNumber = phone
		} else {
			logging.FromContext(ctx).Info("dropping invalid phone number on create")
		}
	}
	if req.PhotoURL != nil {
		nu.PhotoURL = *req.PhotoURL
	}

	uid, err := s.dir.CreateUser(ctx, nu)
	if err != nil {
		return "", err
	}
	return uid, nil
}

// ListUsers returns every account in directory order.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	records, err := s.dir.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(records))
	for _, r := range records {
		users = append(users, domain.User{
			UID:          r.UID,
			Email:        r.Email,
			PasswordHash: r.PasswordHash,
			PasswordSalt: r.PasswordSalt,
			PhoneNumber:  r.PhoneNumber,
			DisplayName:  r.DisplayName,
			PhotoURL:     r.PhotoURL,
		})
	}
	return users, nil
}

// UpdateUser applies only the provided fields. An empty display name, phone
// or photo clears it; an invalid phone number is ignored.
func (s *UserService) UpdateUser(ctx context.Context, uid string, req *domain.UpdateUserRequest) error {
	if err := s.requireUser(ctx, uid); err != nil {
		return err
	}

	changes := identity.UserChanges{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		return &domain.ValidationError{Message: "email não pode ser vazio"}
	}
	if req.Password != nil && *req.Password == "" {
		return &domain.ValidationError{Message: "password não pode ser vazio"}
	}
	if req.PhoneNumber != nil {
		if *req.PhoneNumber == "" {
			changes.PhoneNumber = req.PhoneNumber
		} else if phone, ok := NormalizePhone(*req.PhoneNumber, s.region); ok {
			changes.PhoneNumber = &phone
		}
	}
	if changes.Empty() {
		return &domain.ValidationError{Message: "Nenhum campo para atualizar"}
	}

	if err := s.dir.UpdateUser(ctx, uid, changes); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

// DeleteUser removes an account after checking it exists.
func (s *UserService) DeleteUser(ctx context.Context, uid string) error {
	if err := s.requireUser(ctx, uid); err != nil {
		return err
	}
	if err := s.dir.DeleteUser(ctx, uid); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) requireUser(ctx context.Context, uid string) error {
	if _, err := s.dir.GetUser(ctx, uid); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lookup user %s: %w", uid, err)
	}
	return nil
}
