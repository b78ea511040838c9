package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/freelance-tracker-api/internal/config"
	"github.com/yukikurage/freelance-tracker-api/internal/handlers"
	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"github.com/yukikurage/freelance-tracker-api/internal/repository"
	"github.com/yukikurage/freelance-tracker-api/internal/services"
	"github.com/yukikurage/freelance-tracker-api/internal/store"
	"github.com/yukikurage/freelance-tracker-api/internal/utils"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, metricsEnabled bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.New(store.NewFileBackend(filepath.Join(t.TempDir(), "db.json")), zap.NewNop())
	s.Load(context.Background())

	log := zap.NewNop()
	ids := utils.NewMonotonicIDs(nil)
	authService := services.NewAuthService(repository.NewUserRepository(s), ids, utils.NewSessionTokens(nil, nil))
	resource := func(svc *services.ResourceService, entity string) *handlers.ResourceHandler {
		return handlers.NewResourceHandler(svc, entity, log)
	}
	collection := func(name string) *repository.CollectionRepository {
		return repository.NewCollectionRepository(s, name)
	}

	cfg := &config.Config{ClientURL: "*", MetricsEnabled: metricsEnabled}
	return New(cfg, log, authService, Handlers{
		Auth:        handlers.NewAuthHandler(authService, log),
		Clients:     resource(services.NewClientService(collection(models.CollectionClients), ids), "Client"),
		Projects:    resource(services.NewProjectService(collection(models.CollectionProjects), ids), "Project"),
		TimeEntries: resource(services.NewTimeEntryService(collection(models.CollectionTimeEntries), ids), "Time entry"),
		Invoices:    resource(services.NewInvoiceService(collection(models.CollectionInvoices), ids), "Invoice"),
	})
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Freelance Tracker API is running"}`, w.Body.String())
}

func TestMetricsToggle(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine(t, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newTestEngine(t, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreflightSkipsTokenGate(t *testing.T) {
	r := newTestEngine(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/clients", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestInvoicesHaveNoItemRoutes(t *testing.T) {
	r := newTestEngine(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices/1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrailingSlashIsGatedNotRedirected(t *testing.T) {
	r := newTestEngine(t, false)

	for _, path := range []string{"/login/", "/register/", "/clients/"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"email":"a@x.com","password":"p1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Empty(t, w.Header().Get("Location"), path)
	}
}
