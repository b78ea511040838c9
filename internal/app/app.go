// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-tracker-api/internal/config"
	"github.com/yukikurage/freelance-tracker-api/internal/database"
	"github.com/yukikurage/freelance-tracker-api/internal/handlers"
	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"github.com/yukikurage/freelance-tracker-api/internal/repository"
	"github.com/yukikurage/freelance-tracker-api/internal/router"
	"github.com/yukikurage/freelance-tracker-api/internal/services"
	"github.com/yukikurage/freelance-tracker-api/internal/store"
	"github.com/yukikurage/freelance-tracker-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShutdownTimeout bounds how long in-flight requests may run after a stop signal.
const ShutdownTimeout = 10 * time.Second

// App is a fully wired server.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *store.Store
	engine *gin.Engine
	close  func() error
}

// New opens the configured backend, loads the document and builds the router.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	switch cfg.GinMode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	backend, closeBackend, err := OpenBackend(cfg, log)
	if err != nil {
		return nil, err
	}

	s := store.New(backend, log)
	s.Load(ctx)

	ids := utils.NewMonotonicIDs(nil)
	ids.Observe(s.MaxID())
	tokens := utils.NewSessionTokens(nil, nil)

	users := repository.NewUserRepository(s)
	authService := services.NewAuthService(users, ids, tokens)

	collection := func(name string) *repository.CollectionRepository {
		return repository.NewCollectionRepository(s, name)
	}

	engine := router.New(cfg, log, authService, router.Handlers{
		Auth:        handlers.NewAuthHandler(authService, log),
		Clients:     handlers.NewResourceHandler(services.NewClientService(collection(models.CollectionClients), ids), "Client", log),
		Projects:    handlers.NewResourceHandler(services.NewProjectService(collection(models.CollectionProjects), ids), "Project", log),
		TimeEntries: handlers.NewResourceHandler(services.NewTimeEntryService(collection(models.CollectionTimeEntries), ids), "Time entry", log),
		Invoices:    handlers.NewResourceHandler(services.NewInvoiceService(collection(models.CollectionInvoices), ids), "Invoice", log),
	})

	return &App{
		cfg:    cfg,
		log:    log,
		store:  s,
		engine: engine,
		close:  closeBackend,
	}, nil
}

// OpenBackend returns the document backend selected by STORE_DRIVER and a
// function releasing its resources.
func OpenBackend(cfg *config.Config, log *zap.Logger) (store.Backend, func() error, error) {
	if cfg.StoreDriver == config.DriverFile {
		return store.NewFileBackend(cfg.DataFile), func() error { return nil }, nil
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return sqlBackend(db)
}

// sqlBackend migrates db and wraps it as the document backend. The connection
// is closed when migration fails.
func sqlBackend(db *gorm.DB) (store.Backend, func() error, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store.NewGormBackend(db), sqlDB.Close, nil
}

// Handler returns the HTTP handler serving the API.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Store returns the document store backing the API.
func (a *App) Store() *store.Store {
	return a.store
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting HTTP server", zap.String("address", srv.Addr), zap.String("ginMode", gin.Mode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.log.Info("Server exited gracefully")
	return nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.close()
}
