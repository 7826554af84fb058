package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/getAllUsers", h.ListUsers)
	rg.POST("/add/user", h.CreateUser)
	rg.PATCH("/update/user", h.UpdateUser)
	rg.DELETE("/delete/user", h.DeleteUser)
}
