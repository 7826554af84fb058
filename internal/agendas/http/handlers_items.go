package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/if-project/agenda-backend/internal/agendas/domain"
	"github.com/if-project/agenda-backend/internal/api/http/params"
)

func (h *Handler) CreateSubject(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "nome_materia")
	if !ok {
		return
	}

	id, err := h.itemService.CreateSubject(c.Request.Context(), p["uid_da_agenda"], &domain.SubjectInput{
		Name:      p["nome_materia"],
		Professor: params.Optional(c, "professor"),
		StartTime: params.Optional(c, "horario_inicio"),
		EndTime:   params.Optional(c, "horario_fim"),
	})
	if err != nil {
		h.fail(c, "create subject", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("A matéria %s com o UID %s foi criada com sucesso", p["nome_materia"], id),
		"uid_da_materia": id,
	})
}

func (h *Handler) UpdateSubject(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_da_materia")
	if !ok {
		return
	}

	err := h.itemService.UpdateSubject(c.Request.Context(), p["uid_da_agenda"], p["uid_da_materia"], &domain.SubjectChanges{
		Name:      params.Optional(c, "nome_materia"),
		Professor: params.Optional(c, "professor"),
		StartTime: params.Optional(c, "horario_inicio"),
		EndTime:   params.Optional(c, "horario_fim"),
	})
	if err != nil {
		h.fail(c, "update subject", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("A matéria com o UID %s foi atualizada com sucesso.", p["uid_da_materia"])})
}

func (h *Handler) DeleteSubject(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_da_materia")
	if !ok {
		return
	}

	if err := h.itemService.DeleteSubject(c.Request.Context(), p["uid_da_agenda"], p["uid_da_materia"]); err != nil {
		h.fail(c, "delete subject", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("A matéria com o UID %s foi deletada com sucesso.", p["uid_da_materia"])})
}

func (h *Handler) CreateTask(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "nome_da_tarefa")
	if !ok {
		return
	}

	id, err := h.itemService.CreateTask(c.Request.Context(), p["uid_da_agenda"], p["nome_da_tarefa"])
	if err != nil {
		h.fail(c, "create task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("A tarefa com o UID %s foi criada com sucesso.", id),
		"uid_da_tarefa": id,
	})
}

// UpdateTask renames the task if asked and always refreshes its timestamp
func (h *Handler) UpdateTask(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_da_tarefa")
	if !ok {
		return
	}

	if err := h.itemService.UpdateTask(c.Request.Context(), p["uid_da_agenda"], p["uid_da_tarefa"], params.Optional(c, "nome_da_tarefa")); err != nil {
		h.fail(c, "update task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("A tarefa com o UID %s foi atualizada com sucesso.", p["uid_da_tarefa"])})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_da_tarefa")
	if !ok {
		return
	}

	if err := h.itemService.DeleteTask(c.Request.Context(), p["uid_da_agenda"], p["uid_da_tarefa"]); err != nil {
		h.fail(c, "delete task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("A tarefa com o UID %s foi deletada com sucesso.", p["uid_da_tarefa"])})
}

func (h *Handler) CreateEvent(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "nome_do_evento")
	if !ok {
		return
	}

	id, err := h.itemService.CreateEvent(c.Request.Context(), p["uid_da_agenda"], p["nome_do_evento"])
	if err != nil {
		h.fail(c, "create event", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("O evento com o UID %s foi criado com sucesso.", id),
		"uid_do_evento": id,
	})
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_do_evento")
	if !ok {
		return
	}

	if err := h.itemService.UpdateEvent(c.Request.Context(), p["uid_da_agenda"], p["uid_do_evento"], params.Optional(c, "nome_do_evento")); err != nil {
		h.fail(c, "update event", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("O evento com o UID %s foi atualizado com sucesso.", p["uid_do_evento"])})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	p, ok := params.Require(c, "uid_da_agenda", "uid_do_evento")
	if !ok {
		return
	}

	if err := h.itemService.DeleteEvent(c.Request.Context(), p["uid_da_agenda"], p["uid_do_evento"]); err != nil {
		h.fail(c, "delete event", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("O evento com o UID %s foi deletado com sucesso.", p["uid_do_evento"])})
}
