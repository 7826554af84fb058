package repository

import (
	"context"
	"fmt"

	"github.com/if-project/agenda-backend/internal/agendas/domain"
	"github.com/if-project/agenda-backend/internal/store"
)

// Layout: agenda/{agenda_id} holds the agenda and its child collections;
// membros/{user_id}/{agenda_id} holds {role}.
const (
	agendaRoot     = "agenda"
	membershipRoot = "membros"
	inviteKeyField = "chave_convite"
)

// Child collections under an agenda node.
const (
	SubjectsCollection = "materias"
	TasksCollection    = "tarefas"
	EventsCollection   = "eventos"
)

// AgendaRepository reads and writes agendas, their children and the
// per-user membership index in the tree store.
type AgendaRepository struct {
	tree store.Tree
}

func NewAgendaRepository(tree store.Tree) *AgendaRepository {
	return &AgendaRepository{tree: tree}
}

func agendaPath(id string) string {
	return store.Join(agendaRoot, id)
}

func itemPath(agendaID, collection, itemID string) string {
	return store.Join(agendaRoot, agendaID, collection, itemID)
}

func membershipPath(uid, agendaID string) string {
	return store.Join(membershipRoot, uid, agendaID)
}

// Create writes a new agenda node.
func (r *AgendaRepository) Create(ctx context.Context, id string, a *domain.Agenda) error {
	if err := r.tree.Set(ctx, agendaPath(id), a); err != nil {
		return fmt.Errorf("failed to create agenda: %w", err)
	}
	return nil
}

// Get returns ErrAgendaNotFound when no node is stored under id.
func (r *AgendaRepository) Get(ctx context.Context, id string) (*domain.Agenda, error) {
	var a domain.Agenda
	ok, err := r.tree.Get(ctx, agendaPath(id), &a)
	if err != nil {
		return nil, fmt.Errorf("failed to get agenda: %w", err)
	}
	if !ok {
		return nil, domain.ErrAgendaNotFound
	}
	return &a, nil
}

// List returns the raw agenda subtree; nil when nothing was created yet.
func (r *AgendaRepository) List(ctx context.Context) (domain.AgendaSet, error) {
	var all domain.AgendaSet
	ok, err := r.tree.Get(ctx, agendaRoot, &all)
	if err != nil {
		return nil, fmt.Errorf("failed to list agendas: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return all, nil
}

// FindByInviteKey returns the first agenda whose invite key equals key.
func (r *AgendaRepository) FindByInviteKey(ctx context.Context, key string) (string, *domain.Agenda, error) {
	nodes, err := r.tree.QueryEqual(ctx, agendaRoot, inviteKeyField, key)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up invite key: %w", err)
	}
	if len(nodes) == 0 {
		return "", nil, domain.ErrInviteNotFound
	}

	var a domain.Agenda
	if err := nodes[0].Unmarshal(&a); err != nil {
		return "", nil, fmt.Errorf("failed to decode agenda %s: %w", nodes[0].Key, err)
	}
	return nodes[0].Key, &a, nil
}

// Update merges fields into an existing agenda.
func (r *AgendaRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return store.MutateExisting(ctx, r.tree, agendaPath(id), domain.ErrAgendaNotFound, func(ctx context.Context) error {
		return r.tree.Update(ctx, agendaPath(id), fields)
	})
}

// Delete removes the agenda node and everything under it. Membership index
// entries pointing at it are left in place.
func (r *AgendaRepository) Delete(ctx context.Context, id string) error {
	return store.MutateExisting(ctx, r.tree, agendaPath(id), domain.ErrAgendaNotFound, func(ctx context.Context) error {
		return r.tree.Delete(ctx, agendaPath(id))
	})
}

// Exists reports whether an agenda node is stored under id.
func (r *AgendaRepository) Exists(ctx context.Context, id string) (bool, error) {
	return store.Exists(ctx, r.tree, agendaPath(id))
}

// SetMembership writes (or overwrites) the role of uid in agendaID.
func (r *AgendaRepository) SetMembership(ctx context.Context, uid, agendaID, role string) error {
	if err := r.tree.Set(ctx, membershipPath(uid, agendaID), domain.Membership{Role: role}); err != nil {
		return fmt.Errorf("failed to write membership: %w", err)
	}
	return nil
}

// Memberships returns agenda id -> membership for uid.
func (r *AgendaRepository) Memberships(ctx context.Context, uid string) (map[string]domain.Membership, error) {
	var m map[string]domain.Membership
	if _, err := r.tree.Get(ctx, store.Join(membershipRoot, uid), &m); err != nil {
		return nil, fmt.Errorf("failed to read memberships: %w", err)
	}
	return m, nil
}

// AllMemberships returns the whole index: user id -> agenda id -> membership.
func (r *AgendaRepository) AllMemberships(ctx context.Context) (map[string]map[string]domain.Membership, error) {
	var m map[string]map[string]domain.Membership
	if _, err := r.tree.Get(ctx, membershipRoot, &m); err != nil {
		return nil, fmt.Errorf("failed to read membership index: %w", err)
	}
	return m, nil
}

// DeleteMembership removes a single (uid, agendaID) record.
func (r *AgendaRepository) DeleteMembership(ctx context.Context, uid, agendaID string) error {
	path := membershipPath(uid, agendaID)
	return store.MutateExisting(ctx, r.tree, path, domain.ErrMembershipNotFound, func(ctx context.Context) error {
		return r.tree.Delete(ctx, path)
	})
}

// CreateItem writes a child record under an existing agenda.
func (r *AgendaRepository) CreateItem(ctx context.Context, agendaID, collection, itemID string, v interface{}) error {
	return store.MutateExisting(ctx, r.tree, agendaPath(agendaID), domain.ErrAgendaNotFound, func(ctx context.Context) error {
		return r.tree.Set(ctx, itemPath(agendaID, collection, itemID), v)
	})
}

// GetItem decodes a child record into v and reports whether it exists.
func (r *AgendaRepository) GetItem(ctx context.Context, agendaID, collection, itemID string, v interface{}) (bool, error) {
	return r.tree.Get(ctx, itemPath(agendaID, collection, itemID), v)
}

// UpdateItem merges fields into an existing child record.
func (r *AgendaRepository) UpdateItem(ctx context.Context, agendaID, collection, itemID string, fields map[string]interface{}, notFound error) error {
	path := itemPath(agendaID, collection, itemID)
	return store.MutateExisting(ctx, r.tree, path, notFound, func(ctx context.Context) error {
		return r.tree.Update(ctx, path, fields)
	})
}

// DeleteItem removes an existing child record.
func (r *AgendaRepository) DeleteItem(ctx context.Context, agendaID, collection, itemID string, notFound error) error {
	path := itemPath(agendaID, collection, itemID)
	return store.MutateExisting(ctx, r.tree, path, notFound, func(ctx context.Context) error {
		return r.tree.Delete(ctx, path)
	})
}
