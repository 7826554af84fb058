package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/if-project/agenda-backend/internal/api/http/params"
	"github.com/if-project/agenda-backend/internal/logging"
	"github.com/if-project/agenda-backend/internal/users/domain"
)

// ListUsers returns every account as a flat projection
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser creates an account with email and password
func (h *Handler) CreateUser(c *gin.Context) {
	p, ok := params.Require(c, "email", "password", "display_name")
	if !ok {
		return
	}

	uid, err := h.userService.CreateUser(c.Request.Context(), &domain.CreateUserRequest{
		Email:       p["email"],
		Password:    p["password"],
		DisplayName: p["display_name"],
		PhoneNumber: params.Optional(c, "phone_number"),
		PhotoURL:    params.Optional(c, "photo_url"),
	})
	if err != nil {
		h.fail(c, "create user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Criado um usuário com sucesso. UID: %s", uid),
		"uid":     uid,
	})
}

// UpdateUser changes only the fields present in the request
func (h *Handler) UpdateUser(c *gin.Context) {
	p, ok := params.Require(c, "uid")
	if !ok {
		return
	}
	uid := p["uid"]

	err := h.userService.UpdateUser(c.Request.Context(), uid, &domain.UpdateUserRequest{
		Email:       params.Optional(c, "email"),
		Password:    params.Optional(c, "password"),
		DisplayName: params.Optional(c, "display_name"),
		PhoneNumber: params.Optional(c, "phone_number"),
		PhotoURL:    params.Optional(c, "photo_url"),
	})
	if err != nil {
		h.fail(c, "update user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("O usuário com o UID %s foi atualizado com sucesso.", uid)})
}

// DeleteUser removes an account by uid
func (h *Handler) DeleteUser(c *gin.Context) {
	p, ok := params.Require(c, "uid")
	if !ok {
		return
	}
	uid := p["uid"]

	if err := h.userService.DeleteUser(c.Request.Context(), uid); err != nil {
		h.fail(c, "delete user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("O usuário com o UID %s foi deletado com sucesso.", uid)})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Message})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Usuário não encontrado"})
	default:
		logging.FromContext(c.Request.Context()).Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
