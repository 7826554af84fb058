package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/if-project/agenda-backend/internal/agendas/domain"
	"github.com/if-project/agenda-backend/internal/store"
)

func newRepo(t *testing.T) (*AgendaRepository, *store.MemoryTree) {
	t.Helper()
	tree := store.NewMemoryTree()
	return NewAgendaRepository(tree), tree
}

func TestAgendaRepository_CreateGetList(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Nil(t, all)

	require.NoError(t, repo.Create(ctx, "a1", &domain.Agenda{Name: "Math101", ResponsibleUID: "u1", InviteKey: "KEY12345"}))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Math101", got.Name)

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "a1")

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrAgendaNotFound)
}

func TestAgendaRepository_FindByInviteKey(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Create(ctx, "b", &domain.Agenda{Name: "second", InviteKey: "DUP"}))
	require.NoError(t, repo.Create(ctx, "a", &domain.Agenda{Name: "first", InviteKey: "DUP"}))

	id, a, err := repo.FindByInviteKey(ctx, "DUP")
	require.NoError(t, err)
	assert.Equal(t, "a", id)
	assert.Equal(t, "first", a.Name)

	_, _, err = repo.FindByInviteKey(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInviteNotFound)
}

func TestAgendaRepository_UpdateDeleteRequireExistence(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	err := repo.Update(ctx, "ghost", map[string]interface{}{"nome_agenda": "x"})
	assert.ErrorIs(t, err, domain.ErrAgendaNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), domain.ErrAgendaNotFound)

	// update must not have materialized the node
	ok, err := repo.Exists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(ctx, "a1", &domain.Agenda{Name: "Old", ResponsibleUID: "u1"}))
	require.NoError(t, repo.Update(ctx, "a1", map[string]interface{}{"nome_agenda": "New"}))
	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "u1", got.ResponsibleUID)

	require.NoError(t, repo.Delete(ctx, "a1"))
	ok, err = repo.Exists(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAgendaRepository_Memberships(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.SetMembership(ctx, "u1", "a1", domain.RoleAdmin))
	require.NoError(t, repo.SetMembership(ctx, "u1", "a2", domain.RoleUser))
	require.NoError(t, repo.SetMembership(ctx, "u2", "a1", domain.RoleUser))

	m, err := repo.Memberships(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Membership{"a1": {Role: "admin"}, "a2": {Role: "user"}}, m)

	all, err := repo.AllMemberships(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.DeleteMembership(ctx, "u2", "a1"))
	assert.ErrorIs(t, repo.DeleteMembership(ctx, "u2", "a1"), domain.ErrMembershipNotFound)

	m, err = repo.Memberships(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestAgendaRepository_Items(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	err := repo.CreateItem(ctx, "ghost", TasksCollection, "t1", domain.Task{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrAgendaNotFound)

	require.NoError(t, repo.Create(ctx, "a1", &domain.Agenda{Name: "A"}))
	require.NoError(t, repo.CreateItem(ctx, "a1", TasksCollection, "t1", domain.Task{Name: "hw", Timestamp: "2025-06-27T14:00:00"}))

	var task domain.Task
	ok, err := repo.GetItem(ctx, "a1", TasksCollection, "t1", &task)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hw", task.Name)

	err = repo.UpdateItem(ctx, "a1", TasksCollection, "t2", map[string]interface{}{"nome_da_tarefa": "y"}, domain.ErrTaskNotFound)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.NoError(t, repo.DeleteItem(ctx, "a1", TasksCollection, "t1", domain.ErrTaskNotFound))
	assert.ErrorIs(t, repo.DeleteItem(ctx, "a1", TasksCollection, "t1", domain.ErrTaskNotFound), domain.ErrTaskNotFound)

	// the agenda itself survives the removal of its last child
	ok, err = repo.Exists(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, ok)
}
