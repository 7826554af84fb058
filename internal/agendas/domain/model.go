package domain

import "encoding/json"

// Membership roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Agenda is the node stored at agenda/{id}. Its subjects, tasks and events
// live underneath it and are not decoded here.
type Agenda struct {
	Name           string `json:"nome_agenda"`
	ResponsibleUID string `json:"uid_responsavel,omitempty"`
	InviteKey      string `json:"chave_convite,omitempty"`
	CreatedAt      string `json:"criado_em,omitempty"`
}

// Membership is stored at membros/{uid}/{agendaId}.
type Membership struct {
	Role string `json:"role"`
}

// LinkedAgenda is one entry of the agendas-for-user listing.
type LinkedAgenda struct {
	AgendaID string `json:"uid_agenda"`
	Role     string `json:"role"`
	Agenda
}

// Subject ("matéria") is stored at agenda/{id}/materias/{subjectId}.
type Subject struct {
	Name      string `json:"nome_materia"`
	Professor string `json:"professor,omitempty"`
	StartTime string `json:"horario_inicio,omitempty"`
	EndTime   string `json:"horario_fim,omitempty"`
}

// Task ("tarefa") is stored at agenda/{id}/tarefas/{taskId}.
type Task struct {
	Name      string `json:"nome_da_tarefa"`
	Timestamp string `json:"timestamp"`
}

// Event ("evento") is stored at agenda/{id}/eventos/{eventId}.
type Event struct {
	Name      string `json:"nome_do_evento"`
	Timestamp string `json:"timestamp"`
}

// AgendaSet is the raw agenda subtree keyed by agenda id.
type AgendaSet map[string]json.RawMessage

type CreateAgendaRequest struct {
	Name           string
	ResponsibleUID string
}

// CreatedAgenda is returned by agenda creation.
type CreatedAgenda struct {
	ID        string
	InviteKey string
}

// UpdateAgendaRequest: nil fields are left untouched.
type UpdateAgendaRequest struct {
	Name           *string
	ResponsibleUID *string
}

type SubjectInput struct {
	Name      string
	Professor *string
	StartTime *string
	EndTime   *string
}

type SubjectChanges struct {
	Name      *string
	Professor *string
	StartTime *string
	EndTime   *string
}
