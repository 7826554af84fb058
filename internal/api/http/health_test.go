package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/if-project/agenda-backend/internal/store"
)

func setupHealth(t *testing.T) (*gin.Engine, *store.MemoryTree) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tree := store.NewMemoryTree()
	r := gin.New()
	NewHealthHandler("agenda-api", "test", tree).RegisterRoutes(r)
	return r, tree
}

func get(r *gin.Engine, path string) map[string]interface{} {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	body["_code"] = rr.Code
	return body
}

func TestRootAndHealth(t *testing.T) {
	r, _ := setupHealth(t)

	body := get(r, "/")
	assert.Equal(t, http.StatusOK, body["_code"])
	assert.Equal(t, "Agenda API online", body["message"])

	body = get(r, "/health")
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "agenda-api", body["service"])
	assert.Equal(t, "test", body["version"])
}

func TestTestFirebase(t *testing.T) {
	r, tree := setupHealth(t)

	body := get(r, "/testFirebase")
	require.Equal(t, http.StatusOK, body["_code"])
	assert.Equal(t, "Conectado com sucesso ao Firebase", body["message"])

	tree.FailWith = assert.AnError
	body = get(r, "/testFirebase")
	require.Equal(t, http.StatusOK, body["_code"])
	assert.Contains(t, body["message"], "Falha ao se conectar com o Firebase")
}
