package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/if-project/agenda-backend/internal/agendas/domain"
	"github.com/if-project/agenda-backend/internal/agendas/repository"
	"github.com/if-project/agenda-backend/internal/identity"
	"github.com/if-project/agenda-backend/internal/logging"
	"github.com/if-project/agenda-backend/internal/store"
)

const (
	inviteKeyLength   = 8
	inviteKeyAttempts = 5
	inviteAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// UserLookup is the part of the identity directory agendas depend on.
type UserLookup interface {
	GetUser(ctx context.Context, uid string) (*identity.Record, error)
}

// AgendaService owns agenda lifecycle, invites and membership.
type AgendaService struct {
	repo    *repository.AgendaRepository
	users   UserLookup
	invites repository.InviteCache

	newKey func() (string, error)
	now    func() time.Time
}

func NewAgendaService(repo *repository.AgendaRepository, users UserLookup, invites repository.InviteCache) *AgendaService {
	if invites == nil {
		invites = repository.NoopInviteCache{}
	}
	return &AgendaService{
		repo:    repo,
		users:   users,
		invites: invites,
		newKey:  randomInviteKey,
		now:     time.Now,
	}
}

func randomInviteKey() (string, error) {
	var sb strings.Builder
	limit := big.NewInt(int64(len(inviteAlphabet)))
	for i := 0; i < inviteKeyLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(inviteAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// CreateAgenda writes the agenda and then the creator's admin membership.
// The two writes are independent; a failure between them is not rolled back.
func (s *AgendaService) CreateAgenda(ctx context.Context, req *domain.CreateAgendaRequest) (*domain.CreatedAgenda, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &domain.ValidationError{Message: "nome_agenda é obrigatório"}
	}
	if err := requireKey(req.ResponsibleUID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, req.ResponsibleUID); err != nil {
		return nil, err
	}

	key, err := s.unusedInviteKey(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	agenda := &domain.Agenda{
		Name:           req.Name,
		ResponsibleUID: req.ResponsibleUID,
		InviteKey:      key,
		CreatedAt:      s.now().Format(timestampLayout),
	}
	if err := s.repo.Create(ctx, id, agenda); err != nil {
		return nil, err
	}
	if err := s.repo.SetMembership(ctx, req.ResponsibleUID, id, domain.RoleAdmin); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("agenda created", "agenda_id", id)
	return &domain.CreatedAgenda{ID: id, InviteKey: key}, nil
}

func (s *AgendaService) unusedInviteKey(ctx context.Context) (string, error) {
	for i := 0; i < inviteKeyAttempts; i++ {
		key, err := s.newKey()
		if err != nil {
			return "", fmt.Errorf("generate invite key: %w", err)
		}
		_, _, err = s.repo.FindByInviteKey(ctx, key)
		if errors.Is(err, domain.ErrInviteNotFound) {
			return key, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", domain.ErrInviteKeyExhausted
}

// ResolveInvite finds the agenda an invite key belongs to. A cache failure
// falls through to the store.
func (s *AgendaService) ResolveInvite(ctx context.Context, key string) (string, *domain.Agenda, error) {
	log := logging.FromContext(ctx)

	if id, ok, err := s.invites.Get(ctx, key); err != nil {
		log.Warn("invite cache read failed", "error", err)
	} else if ok {
		a, err := s.repo.Get(ctx, id)
		if err == nil && a.InviteKey == key {
			return id, a, nil
		}
		if err != nil && !errors.Is(err, domain.ErrAgendaNotFound) {
			return "", nil, err
		}
		// stale entry
		if err := s.invites.Delete(ctx, key); err != nil {
			log.Warn("invite cache delete failed", "error", err)
		}
	}

	id, a, err := s.repo.FindByInviteKey(ctx, key)
	if err != nil {
		return "", nil, err
	}
	if err := s.invites.Set(ctx, key, id); err != nil {
		log.Warn("invite cache write failed", "error", err)
	}
	return id, a, nil
}

// ListAgendas returns the raw agenda subtree, nil when empty.
func (s *AgendaService) ListAgendas(ctx context.Context) (domain.AgendaSet, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// ListAgendasForUser resolves every agenda in uid's membership index.
// Ids that no longer resolve are skipped.
func (s *AgendaService) ListAgendasForUser(ctx context.Context, uid string) ([]domain.LinkedAgenda, error) {
	if err := requireKey(uid); err != nil {
		return nil, err
	}
	memberships, err := s.repo.Memberships(ctx, uid)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(memberships))
	for id := range memberships {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.LinkedAgenda, 0, len(ids))
	for _, id := range ids {
		a, err := s.repo.Get(ctx, id)
		if errors.Is(err, domain.ErrAgendaNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, domain.LinkedAgenda{AgendaID: id, Role: memberships[id].Role, Agenda: *a})
	}
	return out, nil
}

// UpdateAgenda changes name and/or responsible user of an existing agenda.
func (s *AgendaService) UpdateAgenda(ctx context.Context, id string, req *domain.UpdateAgendaRequest) error {
	if err := requireKey(id); err != nil {
		return err
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return &domain.ValidationError{Message: "nome_agenda não pode ser vazio"}
		}
		fields["nome_agenda"] = *req.Name
	}
	if req.ResponsibleUID != nil {
		if err := requireKey(*req.ResponsibleUID); err != nil {
			return err
		}
		if err := s.requireUser(ctx, *req.ResponsibleUID); err != nil {
			return err
		}
		fields["uid_responsavel"] = *req.ResponsibleUID
	}
	if len(fields) == 0 {
		return &domain.ValidationError{Message: "Nenhum campo para atualizar"}
	}
	return s.repo.Update(ctx, id, fields)
}

// DeleteAgenda removes the agenda and its children. Membership entries are
// left for the orphan sweep.
func (s *AgendaService) DeleteAgenda(ctx context.Context, id string) error {
	if err := requireKey(id); err != nil {
		return err
	}
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if a.InviteKey != "" {
		if err := s.invites.Delete(ctx, a.InviteKey); err != nil {
			logging.FromContext(ctx).Warn("invite cache delete failed", "error", err)
		}
	}
	return nil
}

// AddMember records uid as a plain member of agendaID. Existing
// memberships are overwritten.
func (s *AgendaService) AddMember(ctx context.Context, agendaID, uid string) error {
	if err := requireKey(agendaID); err != nil {
		return err
	}
	if err := requireKey(uid); err != nil {
		return err
	}
	ok, err := s.repo.Exists(ctx, agendaID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAgendaNotFound
	}
	if err := s.requireUser(ctx, uid); err != nil {
		return err
	}
	return s.repo.SetMembership(ctx, uid, agendaID, domain.RoleUser)
}

func (s *AgendaService) RemoveMember(ctx context.Context, agendaID, uid string) error {
	if err := requireKey(agendaID); err != nil {
		return err
	}
	if err := requireKey(uid); err != nil {
		return err
	}
	return s.repo.DeleteMembership(ctx, uid, agendaID)
}

// SweepOrphanMemberships deletes index entries whose agenda is gone and
// returns how many were removed.
func (s *AgendaService) SweepOrphanMemberships(ctx context.Context) (int, error) {
	index, err := s.repo.AllMemberships(ctx)
	if err != nil {
		return 0, err
	}

	alive := map[string]bool{}
	removed := 0
	for uid, agendas := range index {
		for id := range agendas {
			exists, seen := alive[id]
			if !seen {
				exists, err = s.repo.Exists(ctx, id)
				if err != nil {
					return removed, err
				}
				alive[id] = exists
			}
			if exists {
				continue
			}
			if err := s.repo.DeleteMembership(ctx, uid, id); err != nil && !errors.Is(err, domain.ErrMembershipNotFound) {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func (s *AgendaService) requireUser(ctx context.Context, uid string) error {
	if _, err := s.users.GetUser(ctx, uid); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lookup user %s: %w", uid, err)
	}
	return nil
}

func requireKey(id string) error {
	if !store.ValidKey(id) {
		return &domain.ValidationError{Message: fmt.Sprintf("Identificador inválido: %q", id)}
	}
	return nil
}
