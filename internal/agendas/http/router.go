package http

import "github.com/gin-gonic/gin"

// Register mounts the API-key protected agenda routes.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/getAllAgendas", h.ListAgendas)
	rg.GET("/getAllAgendasLinkedToUser", h.ListAgendasForUser)
	rg.POST("/add/agenda", h.CreateAgenda)
	rg.PATCH("/update/agenda", h.UpdateAgenda)
	rg.DELETE("/delete/agenda", h.DeleteAgenda)

	rg.POST("/add/agenda/membro", h.AddMember)
	rg.DELETE("/delete/agenda/membro", h.RemoveMember)

	rg.POST("/add/agenda/materia", h.CreateSubject)
	rg.PATCH("/update/agenda/materia", h.UpdateSubject)
	rg.DELETE("/delete/agenda/materia", h.DeleteSubject)

	rg.POST("/add/agenda/tarefa", h.CreateTask)
	rg.PATCH("/update/agenda/tarefa", h.UpdateTask)
	rg.DELETE("/delete/agenda/tarefa", h.DeleteTask)

	rg.POST("/add/agenda/evento", h.CreateEvent)
	rg.PATCH("/update/agenda/evento", h.UpdateEvent)
	rg.DELETE("/delete/agenda/evento", h.DeleteEvent)
}

// RegisterPublic mounts the routes reachable without an API key.
func (h *Handler) RegisterPublic(rg gin.IRoutes) {
	rg.GET("/invite/:key", h.ResolveInvite)
}
