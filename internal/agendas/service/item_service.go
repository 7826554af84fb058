package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/if-project/agenda-backend/internal/agendas/domain"
	"github.com/if-project/agenda-backend/internal/agendas/repository"
)

// timestampLayout is ISO-8601 at second precision, local time.
const timestampLayout = "2006-01-02T15:04:05"

const invalidTimestampMessage = "Formato de timestamp inválido. Use ISO 8601 (ex: '2025-06-27T14:00:00')"

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// itemKind describes one child collection of an agenda.
type itemKind struct {
	collection string
	notFound   error
}

var (
	subjects = itemKind{repository.SubjectsCollection, domain.ErrSubjectNotFound}
	tasks    = itemKind{repository.TasksCollection, domain.ErrTaskNotFound}
	events   = itemKind{repository.EventsCollection, domain.ErrEventNotFound}
)

// ItemService manages subjects, tasks and events under an agenda.
type ItemService struct {
	repo *repository.AgendaRepository
	now  func() time.Time
}

func NewItemService(repo *repository.AgendaRepository) *ItemService {
	return &ItemService{repo: repo, now: time.Now}
}

func (s *ItemService) stamp() string {
	return s.now().Format(timestampLayout)
}

func (s *ItemService) create(ctx context.Context, kind itemKind, agendaID string, v interface{}) (string, error) {
	if err := requireKey(agendaID); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.repo.CreateItem(ctx, agendaID, kind.collection, id, v); err != nil {
		return "", err
	}
	return id, nil
}

func (s *ItemService) update(ctx context.Context, kind itemKind, agendaID, itemID string, fields map[string]interface{}) error {
	if err := requireKey(agendaID); err != nil {
		return err
	}
	if err := requireKey(itemID); err != nil {
		return err
	}
	return s.repo.UpdateItem(ctx, agendaID, kind.collection, itemID, fields, kind.notFound)
}

func (s *ItemService) remove(ctx context.Context, kind itemKind, agendaID, itemID string) error {
	if err := requireKey(agendaID); err != nil {
		return err
	}
	if err := requireKey(itemID); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, agendaID, kind.collection, itemID, kind.notFound)
}

// CreateSubject validates optional start/end times and stores the subject.
func (s *ItemService) CreateSubject(ctx context.Context, agendaID string, in *domain.SubjectInput) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", &domain.ValidationError{Message: "nome_materia é obrigatório"}
	}
	subject := domain.Subject{Name: in.Name}
	if in.Professor != nil {
		subject.Professor = *in.Professor
	}
	var err error
	if subject.StartTime, err = optionalTime(in.StartTime); err != nil {
		return "", err
	}
	if subject.EndTime, err = optionalTime(in.EndTime); err != nil {
		return "", err
	}
	return s.create(ctx, subjects, agendaID, subject)
}

func (s *ItemService) UpdateSubject(ctx context.Context, agendaID, subjectID string, c *domain.SubjectChanges) error {
	fields := map[string]interface{}{}
	if c.Name != nil {
		if strings.TrimSpace(*c.Name) == "" {
			return &domain.ValidationError{Message: "nome_materia não pode ser vazio"}
		}
		fields["nome_materia"] = *c.Name
	}
	if c.Professor != nil {
		fields["professor"] = *c.Professor
	}
	for key, v := range map[string]*string{"horario_inicio": c.StartTime, "horario_fim": c.EndTime} {
		if v == nil {
			continue
		}
		t, err := optionalTime(v)
		if err != nil {
			return err
		}
		fields[key] = t
	}
	if len(fields) == 0 {
		return &domain.ValidationError{Message: "Nenhum campo para atualizar"}
	}
	return s.update(ctx, subjects, agendaID, subjectID, fields)
}

func (s *ItemService) DeleteSubject(ctx context.Context, agendaID, subjectID string) error {
	return s.remove(ctx, subjects, agendaID, subjectID)
}

// CreateTask stores a task stamped with the current time.
func (s *ItemService) CreateTask(ctx context.Context, agendaID, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &domain.ValidationError{Message: "nome_da_tarefa é obrigatório"}
	}
	return s.create(ctx, tasks, agendaID, domain.Task{Name: name, Timestamp: s.stamp()})
}

// UpdateTask renames a task when name is given; the timestamp is always
// refreshed.
func (s *ItemService) UpdateTask(ctx context.Context, agendaID, taskID string, name *string) error {
	fields := map[string]interface{}{"timestamp": s.stamp()}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return &domain.ValidationError{Message: "nome_da_tarefa não pode ser vazio"}
		}
		fields["nome_da_tarefa"] = *name
	}
	return s.update(ctx, tasks, agendaID, taskID, fields)
}

func (s *ItemService) DeleteTask(ctx context.Context, agendaID, taskID string) error {
	return s.remove(ctx, tasks, agendaID, taskID)
}

// CreateEvent stores an event stamped with the current time.
func (s *ItemService) CreateEvent(ctx context.Context, agendaID, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &domain.ValidationError{Message: "nome_do_evento é obrigatório"}
	}
	return s.create(ctx, events, agendaID, domain.Event{Name: name, Timestamp: s.stamp()})
}

func (s *ItemService) UpdateEvent(ctx context.Context, agendaID, eventID string, name *string) error {
	fields := map[string]interface{}{"timestamp": s.stamp()}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return &domain.ValidationError{Message: "nome_do_evento não pode ser vazio"}
		}
		fields["nome_do_evento"] = *name
	}
	return s.update(ctx, events, agendaID, eventID, fields)
}

func (s *ItemService) DeleteEvent(ctx context.Context, agendaID, eventID string) error {
	return s.remove(ctx, events, agendaID, eventID)
}

// optionalTime returns "" for an absent or blank value and the trimmed
// input when it parses as ISO-8601.
func optionalTime(v *string) (string, error) {
	if v == nil {
		return "", nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return "", nil
	}
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, t); err == nil {
			return t, nil
		}
	}
	return "", &domain.ValidationError{Message: invalidTimestampMessage}
}
