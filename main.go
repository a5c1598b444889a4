package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/lerl/portfolio/internal/config"
	"github.com/lerl/portfolio/internal/logging"
	"github.com/lerl/portfolio/internal/portfolio"
	"github.com/lerl/portfolio/internal/store"
)

const serviceName = "lerl-portfolio"

var version = "dev"

// app carries what the handlers need.
type app struct {
	cfg     *config.Config
	log     *log.Logger
	catalog *portfolio.Catalog
	store   *store.Store
	admin   *admin
	contact *contact
}

func newApp(cfg *config.Config, logger *log.Logger, catalog *portfolio.Catalog, st *store.Store, mailer Mailer) *app {
	adm := newAdmin(cfg, logger, st)
	return &app{
		cfg:     cfg,
		log:     logger,
		catalog: catalog,
		store:   st,
		admin:   adm,
		contact: newContact(cfg, logger, st, mailer, adm.hashIP),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "projects", len(catalog.Projects), "tags", len(catalog.Tags)-1)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	a := newApp(cfg, logger, catalog, st, newSMTPMailer(cfg))

	a.admin.cleanup()
	scheduler, err := a.startCleanupSchedule()
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "mode", cfg.Server.Mode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// startCleanupSchedule runs the privacy cleanup on the configured cron
// schedule and prunes idle contact rate limiters with it.
func (a *app) startCleanupSchedule() (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(a.cfg.Privacy.CleanupSchedule, func() {
		a.admin.cleanup()
		if n := a.contact.limits.Prune(); n > 0 {
			a.log.Debug("pruned contact rate limiters", "count", n)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	a.log.Info("cleanup scheduled", "schedule", a.cfg.Privacy.CleanupSchedule)
	return c, nil
}

func loadCatalog(cfg *config.Config) (*portfolio.Catalog, error) {
	if cfg.Site.CatalogPath != "" {
		return portfolio.LoadFile(cfg.Site.CatalogPath)
	}
	return portfolio.Default()
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(a.log), a.admin.visitorTracking())
	r.SetHTMLTemplate(mustTemplates(a.catalog))

	r.StaticFS("/static", staticFS())
	r.Static("/images", a.cfg.Site.ImagesDir)

	r.GET("/", a.home)
	r.GET("/projects", a.projectList)
	r.GET("/projects/:slug", a.projectModal)
	r.GET("/projects/:slug/lightbox", a.lightbox)
	r.GET("/health", a.health)
	r.GET("/healthz", a.health)

	api := r.Group("/api")
	api.Use(corsMiddleware(a.cfg.Server.CORSOrigins))
	api.GET("/projects", a.apiProjects)
	api.GET("/tags", a.apiTags)
	api.GET("/interests/:name", a.apiInterest)

	a.contact.routes(r)
	a.admin.routes(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{
			"title": "Not found",
			"path":  c.Request.URL.Path,
		})
	})
	return r
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db"`
}

func (a *app) health(c *gin.Context) {
	dbStatus := "up"
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()
	if err := a.store.Ping(pingCtx); err != nil {
		dbStatus = "down"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
		Version:   version,
		DB:        dbStatus,
	})
}
