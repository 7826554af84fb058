package routes

import (
	"github.com/gin-gonic/gin"

	agendahttp "github.com/if-project/agenda-backend/internal/agendas/http"
	attachmenthttp "github.com/if-project/agenda-backend/internal/attachments/http"
	"github.com/if-project/agenda-backend/internal/auth/middleware"
	userhttp "github.com/if-project/agenda-backend/internal/users/http"
)

type V1Deps struct {
	APIKey      string
	Users       *userhttp.Handler
	Agendas     *agendahttp.Handler
	Attachments *attachmenthttp.Handler
}

// RegisterV1 mounts the public invite route and every API-key protected
// route at the root of r.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	dep.Agendas.RegisterPublic(r)

	api := r.Group("")
	api.Use(middleware.APIKeyMiddleware(dep.APIKey))

	dep.Users.Register(api)
	dep.Agendas.Register(api)
	dep.Attachments.Register(api)
}
