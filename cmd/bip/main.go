// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command bip runs the public information bulletin server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"bip-go/internal/cache"
	"bip-go/internal/config"
	"bip-go/internal/handler"
	"bip-go/internal/legacy"
	"bip-go/internal/logging"
	"bip-go/internal/middleware"
	"bip-go/internal/render"
	"bip-go/internal/scheduler"
	"bip-go/internal/service"
	"bip-go/internal/session"
	"bip-go/internal/store"
	"bip-go/internal/version"
	"bip-go/web"
)

// Build information, set via ldflags:
//
//	go build -ldflags "-X main.appVersion=1.0.0 -X main.appGitCommit=$(git rev-parse --short HEAD) -X main.appBuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	showVersionShort := flag.Bool("v", false, "print version and exit (shorthand)")
	importLegacy := flag.Bool("import-legacy", false, "import content from the legacy portal (BIP_LEGACY_DSN) and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  BIP_DB_PATH          SQLite database path (default ./data/bip.db)
  BIP_SESSION_SECRET   session signing secret, min 32 chars (required)
  BIP_SERVER_HOST      listen host (default localhost)
  BIP_SERVER_PORT      listen port (default 8080)
  BIP_ENV              development or production (default development)
  BIP_LOG_LEVEL        debug, info, warn or error (default info)
  BIP_REDIS_URL        optional Redis URL for the page cache
  BIP_LEGACY_DSN       MySQL DSN of the legacy portal, used by -import-legacy
  BIP_DO_SEED          seed demo content on first start (default false)

Variables can also be provided via a .env file in the working directory.
`)
	}
	flag.Parse()

	if *showVersion || *showVersionShort {
		fmt.Printf("bip %s (commit %s, built %s)\n", appVersion, appGitCommit, appBuildTime)
		return
	}

	if err := run(*importLegacy); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(importLegacy bool) error {
	startTime := time.Now()

	// Missing .env is fine; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logHandler := newLogHandler(cfg)
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// With the schema in place, mirror warnings and errors into the
	// event log so they show up in the admin panel.
	logger = slog.New(logging.NewEventLogHandler(logHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	if importLegacy {
		return runLegacyImport(ctx, cfg, db, logger)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	pages := cache.NewCache(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})

	queries := store.New(db)
	cacheManager := cache.NewManager(queries, pages, time.Duration(cfg.CacheTTL)*time.Second)
	defer cacheManager.Stop()
	if err := cacheManager.Preload(ctx); err != nil {
		logger.Warn("cache preload failed", "error", err)
	}

	menuService := service.NewMenuService(db, cacheManager.Menu)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("locating templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	router := newRouter(cfg, db, sessionManager, renderer, menuService, cacheManager, versionInfo, startTime)

	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started",
			"addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newLogHandler builds the base text handler from the configured level.
func newLogHandler(cfg *config.Config) slog.Handler {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

// runLegacyImport performs a one-shot import from the legacy portal and
// exits. The target menu must be empty, so run it against a fresh
// database without BIP_DO_SEED.
func runLegacyImport(ctx context.Context, cfg *config.Config, db *sql.DB, logger *slog.Logger) error {
	if cfg.LegacyDSN == "" {
		return errors.New("BIP_LEGACY_DSN is not set")
	}

	reader, err := legacy.NewReader(cfg.LegacyDSN)
	if err != nil {
		return err
	}
	defer reader.Close()

	result, err := legacy.NewImporter(db, logger).Run(ctx, reader)
	if err != nil {
		return fmt.Errorf("legacy import: %w", err)
	}

	fmt.Printf("Import %s finished: %d menu items, %d articles, %d settings (%d skipped)\n",
		result.RunID, result.MenuItems, result.Articles, result.Settings, result.Skipped)
	for _, msg := range result.Errors {
		fmt.Printf("  warning: %s\n", msg)
	}
	return nil
}

// crudHandlers groups the form handlers of one admin resource.
type crudHandlers struct {
	list     http.HandlerFunc
	newForm  http.HandlerFunc
	create   http.HandlerFunc
	editForm http.HandlerFunc
	update   http.HandlerFunc
	delete   http.HandlerFunc
}

func registerCRUD(r chi.Router, h crudHandlers) {
	r.Get("/", h.list)
	r.Get("/new", h.newForm)
	r.Post("/", h.create)
	r.Get("/{id}", h.editForm)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
}

func newRouter(
	cfg *config.Config,
	db *sql.DB,
	sessionManager *scs.SessionManager,
	renderer *render.Renderer,
	menuService *service.MenuService,
	cacheManager *cache.Manager,
	versionInfo *version.Info,
	startTime time.Time,
) http.Handler {
	isDev := cfg.IsDevelopment()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	publicLimiter := middleware.NewGlobalRateLimiter(10, 20)
	csrfProtect := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), isDev))

	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	dashboardHandler := handler.NewDashboardHandler(db, renderer, cacheManager)
	menuHandler := handler.NewMenuHandler(db, renderer, menuService, cacheManager)
	articleHandler := handler.NewArticleHandler(db, renderer, menuService, cacheManager)
	userHandler := handler.NewUserHandler(db, renderer, cacheManager)
	settingsHandler := handler.NewSettingsHandler(db, renderer, cacheManager)
	eventsHandler := handler.NewEventsHandler(db, renderer, cacheManager)
	docsHandler := handler.NewDocsHandler(renderer, cfg, cacheManager, startTime, versionInfo)
	healthHandler := handler.NewHealthHandler(db, sessionManager, cfg.DBPath, versionInfo)
	apiHandler := handler.NewAPIHandler(db)
	seoHandler := handler.NewSEOHandler(db, menuService, cacheManager)
	frontendHandler := handler.NewFrontendHandler(db, renderer, menuService, cacheManager)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(isDev)))
	r.Use(sessionManager.LoadAndSave)

	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/.well-known/security.txt", seoHandler.SecurityTxt)

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Authentication, rate limited and CSRF protected.
	r.Group(func(r chi.Router) {
		r.Use(publicLimiter.Middleware())
		r.Use(csrfProtect)
		r.Use(loginProtection.Middleware())
		r.Get("/login", authHandler.LoginForm)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	// Admin panel.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfProtect)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		// Content management, open to editors.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEditor())

			r.Get("/", dashboardHandler.Show)

			r.Route("/menu", func(r chi.Router) {
				registerCRUD(r, crudHandlers{
					list:     menuHandler.List,
					newForm:  menuHandler.NewForm,
					create:   menuHandler.Create,
					editForm: menuHandler.EditForm,
					update:   menuHandler.Update,
					delete:   menuHandler.Delete,
				})
				r.Post("/reorder", menuHandler.Reorder)
				r.Post("/{id}/toggle", menuHandler.Toggle)
			})

			// JSON menu API used by the drag-and-drop admin UI.
			r.Route("/api/menu", func(r chi.Router) {
				r.Get("/{id}", menuHandler.Show)
				r.Put("/{id}", menuHandler.Put)
				r.Delete("/{id}", menuHandler.Destroy)
			})

			r.Route("/articles", func(r chi.Router) {
				registerCRUD(r, crudHandlers{
					list:     articleHandler.List,
					newForm:  articleHandler.NewForm,
					create:   articleHandler.Create,
					editForm: articleHandler.EditForm,
					update:   articleHandler.Update,
					delete:   articleHandler.Delete,
				})
				r.Get("/{id}/versions", articleHandler.Versions)
				r.Post("/{id}/versions/{version}/restore", articleHandler.Restore)
			})
		})

		// Administration, admin role only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Route("/users", func(r chi.Router) {
				registerCRUD(r, crudHandlers{
					list:     userHandler.List,
					newForm:  userHandler.NewForm,
					create:   userHandler.Create,
					editForm: userHandler.EditForm,
					update:   userHandler.Update,
					delete:   userHandler.Delete,
				})
			})

			r.Get("/settings", settingsHandler.List)
			r.Post("/settings", settingsHandler.Update)
			r.Post("/cache/clear", dashboardHandler.ClearCache)
			r.Get("/events", eventsHandler.List)
			r.Get("/docs", docsHandler.Overview)
			r.Get("/docs/{slug}", docsHandler.Guide)
		})
	})

	// Anonymous JSON API. No CSRF: the view counter is called from
	// public pages without a session.
	r.Route("/api", func(r chi.Router) {
		r.Use(publicLimiter.Middleware())
		r.Post("/article/{id}/view", apiHandler.RecordView)
	})

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Everything else is a public bulletin page.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadUser(sessionManager, db))
		r.Get("/*", frontendHandler.Serve)
	})

	return r
}
