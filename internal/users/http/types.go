package http

import "github.com/if-project/agenda-backend/internal/users/service"

type Handler struct {
	userService *service.UserService
}

func New(userService *service.UserService) *Handler {
	return &Handler{
		userService: userService,
	}
}
