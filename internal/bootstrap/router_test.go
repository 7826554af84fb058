package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agendahttp "github.com/if-project/agenda-backend/internal/agendas/http"
	agendarepo "github.com/if-project/agenda-backend/internal/agendas/repository"
	agendasvc "github.com/if-project/agenda-backend/internal/agendas/service"
	"github.com/if-project/agenda-backend/internal/api/http/middleware"
	"github.com/if-project/agenda-backend/internal/api/http/routes"
	attachmenthttp "github.com/if-project/agenda-backend/internal/attachments/http"
	attachmentsvc "github.com/if-project/agenda-backend/internal/attachments/service"
	"github.com/if-project/agenda-backend/internal/auth"
	"github.com/if-project/agenda-backend/internal/blob"
	"github.com/if-project/agenda-backend/internal/identity"
	"github.com/if-project/agenda-backend/internal/store"
	userhttp "github.com/if-project/agenda-backend/internal/users/http"
	usersvc "github.com/if-project/agenda-backend/internal/users/service"
)

const testSecret = "s3cret"

func buildTestRouter(t *testing.T, limiter *middleware.ClientRateLimiter) *gin.Engine {
	t.Helper()
	SetGinMode("test")

	tree := store.NewMemoryTree()
	dir := identity.NewMemoryDirectory()
	dir.Add(identity.Record{UID: "u1", Email: "u1@example.com"})
	repo := agendarepo.NewAgendaRepository(tree)

	return BuildRouter(RouterDeps{
		ServiceName: "agenda-backend",
		Version:     "test",
		RateLimiter: limiter,
		Tree:        tree,
		V1: routes.V1Deps{
			APIKey:      auth.DeriveAPIKey(testSecret),
			Users:       userhttp.New(usersvc.NewUserService(dir, "BR")),
			Agendas:     agendahttp.New(agendasvc.NewAgendaService(repo, dir, nil), agendasvc.NewItemService(repo), agendasvc.RedirectTargets{StoreURL: "https://store.example.com"}),
			Attachments: attachmenthttp.New(attachmentsvc.NewAttachmentService(blob.NewMemoryStore())),
		},
	})
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestRouter_APIKeyGuardsProtectedRoutes(t *testing.T) {
	r := buildTestRouter(t, nil)

	rr := serve(r, http.MethodGet, "/getAllAgendas")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"detail":"forbidden"}`, rr.Body.String())

	rr = serve(r, http.MethodGet, "/getAllAgendas?api_key=wrong")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = serve(r, http.MethodGet, "/getAllAgendas?api_key="+auth.DeriveAPIKey(testSecret))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := buildTestRouter(t, nil)

	for _, path := range []string{"/", "/health", "/testFirebase"} {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, path).Code, path)
	}

	rr := serve(r, http.MethodGet, "/invite/UNKNOWN")
	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Equal(t, "https://store.example.com", rr.Header().Get("Location"))
}

func TestRouter_MathInviteEndToEnd(t *testing.T) {
	r := buildTestRouter(t, nil)
	key := auth.DeriveAPIKey(testSecret)

	q := url.Values{"api_key": {key}, "nome_agenda": {"Math101"}, "uid_responsavel": {"u1"}}
	rr := serve(r, http.MethodPost, "/add/agenda?"+q.Encode())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var created map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = serve(r, http.MethodGet, "/invite/"+created["chave_convite"])
	require.Equal(t, http.StatusOK, rr.Code)
	var invite map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &invite))
	assert.Equal(t, "Math101", invite["nome_agenda"])
}

func TestRouter_RateLimit(t *testing.T) {
	r := buildTestRouter(t, middleware.NewClientRateLimiter(1, 1))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/health").Code)
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)

	cfg := corsConfig([]string{"https://app.example.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowOrigins)
}
