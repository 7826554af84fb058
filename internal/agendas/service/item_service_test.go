package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/if-project/agenda-backend/internal/agendas/domain"
	"github.com/if-project/agenda-backend/internal/agendas/repository"
)

func strPtr(s string) *string { return &s }

func withAgenda(t *testing.T) (*fixture, string) {
	t.Helper()
	f := newFixture(t, nil)
	created, err := f.agenda.CreateAgenda(context.Background(), &domain.CreateAgendaRequest{Name: "Math101", ResponsibleUID: "u1"})
	require.NoError(t, err)
	return f, created.ID
}

func TestTask_CreateStampsNow(t *testing.T) {
	ctx := context.Background()
	f, agendaID := withAgenda(t)
	f.items.now = func() time.Time { return time.Date(2025, 6, 27, 14, 0, 0, 123456789, time.Local) }

	id, err := f.items.CreateTask(ctx, agendaID, "Homework")
	require.NoError(t, err)

	var task domain.Task
	ok, err := f.repo.GetItem(ctx, agendaID, repository.TasksCollection, id, &task)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Task{Name: "Homework", Timestamp: "2025-06-27T14:00:00"}, task)
}

func TestTask_UpdateRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	f, agendaID := withAgenda(t)
	f.items.now = func() time.Time { return time.Date(2025, 6, 27, 14, 0, 0, 0, time.Local) }
	id, err := f.items.CreateTask(ctx, agendaID, "Homework")
	require.NoError(t, err)

	f.items.now = func() time.Time { return time.Date(2025, 6, 28, 9, 30, 0, 0, time.Local) }
	require.NoError(t, f.items.UpdateTask(ctx, agendaID, id, nil))

	var task domain.Task
	_, err = f.repo.GetItem(ctx, agendaID, repository.TasksCollection, id, &task)
	require.NoError(t, err)
	assert.Equal(t, "Homework", task.Name)
	assert.Equal(t, "2025-06-28T09:30:00", task.Timestamp)
}

func TestItems_MissingParentAgenda(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.items.CreateTask(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrAgendaNotFound)
	_, err = f.items.CreateEvent(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrAgendaNotFound)
	_, err = f.items.CreateSubject(ctx, "missing", &domain.SubjectInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrAgendaNotFound)
}

func TestItems_DeleteMissingChildLeavesAgendaUntouched(t *testing.T) {
	ctx := context.Background()
	f, agendaID := withAgenda(t)
	before, err := f.repo.List(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, f.items.DeleteTask(ctx, agendaID, "nope"), domain.ErrTaskNotFound)
	assert.ErrorIs(t, f.items.DeleteEvent(ctx, agendaID, "nope"), domain.ErrEventNotFound)
	assert.ErrorIs(t, f.items.DeleteSubject(ctx, agendaID, "nope"), domain.ErrSubjectNotFound)
	assert.ErrorIs(t, f.items.UpdateEvent(ctx, agendaID, "nope", strPtr("x")), domain.ErrEventNotFound)

	after, err := f.repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEvent_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f, agendaID := withAgenda(t)

	id, err := f.items.CreateEvent(ctx, agendaID, "Exam")
	require.NoError(t, err)
	require.NoError(t, f.items.UpdateEvent(ctx, agendaID, id, strPtr("Final exam")))

	var ev domain.Event
	_, err = f.repo.GetItem(ctx, agendaID, repository.EventsCollection, id, &ev)
	require.NoError(t, err)
	assert.Equal(t, "Final exam", ev.Name)

	require.NoError(t, f.items.DeleteEvent(ctx, agendaID, id))
	ok, err := f.repo.GetItem(ctx, agendaID, repository.EventsCollection, id, &ev)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubject_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f, agendaID := withAgenda(t)

	id, err := f.items.CreateSubject(ctx, agendaID, &domain.SubjectInput{
		Name:      "Calculus",
		Professor: strPtr("Dr. Souza"),
		StartTime: strPtr("2025-06-27T14:00:00"),
		EndTime:   strPtr(" 15:30 "),
	})
	require.NoError(t, err)

	var s domain.Subject
	_, err = f.repo.GetItem(ctx, agendaID, repository.SubjectsCollection, id, &s)
	require.NoError(t, err)
	assert.Equal(t, domain.Subject{Name: "Calculus", Professor: "Dr. Souza", StartTime: "2025-06-27T14:00:00", EndTime: "15:30"}, s)

	require.NoError(t, f.items.UpdateSubject(ctx, agendaID, id, &domain.SubjectChanges{Professor: strPtr("")}))
	_, err = f.repo.GetItem(ctx, agendaID, repository.SubjectsCollection, id, &s)
	require.NoError(t, err)
	assert.Equal(t, "", s.Professor)
	assert.Equal(t, "Calculus", s.Name)
}

func TestSubject_RejectsBadTime(t *testing.T) {
	ctx := context.Background()
	f, agendaID := withAgenda(t)

	_, err := f.items.CreateSubject(ctx, agendaID, &domain.SubjectInput{Name: "Calculus", StartTime: strPtr("tomorrow")})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "ISO 8601")

	err = f.items.UpdateSubject(ctx, agendaID, "any", &domain.SubjectChanges{EndTime: strPtr("27/06/2025")})
	assert.True(t, errors.As(err, &verr))
}

func TestSubject_UpdateWithoutFields(t *testing.T) {
	f, agendaID := withAgenda(t)
	err := f.items.UpdateSubject(context.Background(), agendaID, "s1", &domain.SubjectChanges{})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestOptionalTime(t *testing.T) {
	for _, in := range []string{"2025-06-27T14:00:00", "2025-06-27T14:00:00Z", "2025-06-27T14:00:00-03:00", "2025-06-27", "14:00", "14:00:30", "2025-06-27T14:00:00.123456"} {
		got, err := optionalTime(&in)
		assert.NoError(t, err, in)
		assert.Equal(t, in, got)
	}

	got, err := optionalTime(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
