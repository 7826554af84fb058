package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/if-project/agenda-backend/internal/logging"
	"github.com/if-project/agenda-backend/internal/store"
)

const storePingTimeout = 5 * time.Second

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

type HealthHandler struct {
	serviceName string
	version     string
	tree        store.Tree
}

func NewHealthHandler(serviceName, version string, tree store.Tree) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		tree:        tree,
	}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Agenda API online"})
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	})
}

// TestFirebase reads the database root. The outcome is reported in the
// message; the status is always 200.
func (h *HealthHandler) TestFirebase(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storePingTimeout)
	defer cancel()

	var root map[string]interface{}
	if _, err := h.tree.Get(ctx, "", &root); err != nil {
		logging.FromContext(ctx).Warn("database connectivity check failed", "error", err)
		c.JSON(http.StatusOK, gin.H{"message": "Falha ao se conectar com o Firebase: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conectado com sucesso ao Firebase"})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
	r.GET("/testFirebase", h.TestFirebase)
}
