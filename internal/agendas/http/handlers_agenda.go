package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/if-project/agenda-backend/internal/agendas/domain"
	"github.com/if-project/agenda-backend/internal/agendas/service"
	"github.com/if-project/agenda-backend/internal/api/http/params"
	"github.com/if-project/agenda-backend/internal/logging"
)

var notFoundDetails = map[error]string{
	domain.ErrAgendaNotFound:     "Agenda não encontrada",
	domain.ErrUserNotFound:       "Usuário não encontrado",
	domain.ErrMembershipNotFound: "O usuário não é membro desta agenda",
	domain.ErrSubjectNotFound:    "Matéria não encontrada",
	domain.ErrTaskNotFound:       "Tarefa não encontrada",
	domain.ErrEventNotFound:      "Evento não encontrado",
	domain.ErrInviteNotFound:     "Convite não encontrado",
}

// ListAgendas returns the raw agenda map
func (h *Handler) ListAgendas(c *gin.Context) {
	all, err := h.agendaService.ListAgendas(c.Request.Context())
	if err != nil {
		h.fail(c, "list agendas", err)
		return
	}
	if all == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Nenhuma agenda foi criada"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// ListAgendasForUser returns every agenda the user is a member of, with role
func (h *Handler) ListAgendasForUser(c *gin.Context) {
	p, ok := params.Require(c, "uid_do_usuario")
	if !ok {
		return
	}

	linked, err := h.agendaService.ListAgendasForUser(c.Request.Context(), p["uid_do_usuario"])
	if err != nil {
		h.fail(c, "list agendas for user", err)
		return
	}
	c.JSON(http.StatusOK, linked)
}

// CreateAgenda creates an agenda owned by an existing user
func (h *Handler) CreateAgenda(c *gin.Context) {
	p, ok := params.Require(c, "nome_agenda", "uid_responsavel")
	if !ok {
		return
	}

	created, err := h.agendaService.CreateAgenda(c.Request.Context(), &domain.CreateAgendaRequest{
		Name:           p["nome_agenda"],
		ResponsibleUID: p["uid_responsavel"],
	})
	if err != nil {
		h.fail(c, "create agenda", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("A agenda %s com o UID %s foi criada com sucesso", p["nome_agenda"], created.ID),
		"uid_agenda":    created.ID,
		"chave_convite": created.InviteKey,
	})
}

func (h *Handler) UpdateAgenda(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda")
	if !ok {
		return
	}
	id := p["uid_da_agenda"]

	err := h.agendaService.UpdateAgenda(c.Request.Context(), id, &domain.UpdateAgendaRequest{
		Name:           params.Optional(c, "nome_agenda"),
		ResponsibleUID: params.Optional(c, "uid_responsavel"),
	})
	if err != nil {
		h.fail(c, "update agenda", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("A agenda com o UID %s foi atualizada com sucesso.", id)})
}

func (h *Handler) DeleteAgenda(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda")
	if !ok {
		return
	}
	id := p["uid_da_agenda"]

	if err := h.agendaService.DeleteAgenda(c.Request.Context(), id); err != nil {
		h.fail(c, "delete agenda", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("A agenda com o UID %s foi deletada com sucesso.", id)})
}

func (h *Handler) AddMember(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_do_usuario")
	if !ok {
		return
	}

	if err := h.agendaService.AddMember(c.Request.Context(), p["uid_da_agenda"], p["uid_do_usuario"]); err != nil {
		h.fail(c, "add member", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("O usuário %s foi adicionado à agenda %s com sucesso.", p["uid_do_usuario"], p["uid_da_agenda"]),
	})
}

func (h *Handler) RemoveMember(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_do_usuario")
	if !ok {
		return
	}

	if err := h.agendaService.RemoveMember(c.Request.Context(), p["uid_da_agenda"], p["uid_do_usuario"]); err != nil {
		h.fail(c, "remove member", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("O usuário %s foi removido da agenda %s com sucesso.", p["uid_do_usuario"], p["uid_da_agenda"]),
	})
}

// ResolveInvite answers with the agenda summary, or redirects the device to
// the app or its store page when the key is unknown.
func (h *Handler) ResolveInvite(c *gin.Context) {
	key := c.Param("key")

	id, agenda, err := h.agendaService.ResolveInvite(c.Request.Context(), key)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message":     "Convite válido",
			"uid_agenda":  id,
			"nome_agenda": agenda.Name,
		})
	case errors.Is(err, domain.ErrInviteNotFound):
		platform := service.DetectPlatform(c.GetHeader("User-Agent"))
		c.Redirect(http.StatusTemporaryRedirect, h.redirects.For(platform, key))
	default:
		h.fail(c, "resolve invite", err)
	}
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Message})
		return
	}
	for sentinel, detail := range notFoundDetails {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusNotFound, gin.H{"detail": detail})
			return
		}
	}
	logging.FromContext(c.Request.Context()).Error(op+" failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
