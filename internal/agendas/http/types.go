package http

import "github.com/if-project/agenda-backend/internal/agendas/service"

type Handler struct {
	agendaService *service.AgendaService
	itemService   *service.ItemService
	redirects     service.RedirectTargets
}

func New(agendaService *service.AgendaService, itemService *service.ItemService, redirects service.RedirectTargets) *Handler {
	return &Handler{
		agendaService: agendaService,
		itemService:   itemService,
		redirects:     redirects,
	}
}
