// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the one place where the concrete dependency
// graph is assembled — sqlite.DB → services → handlers → routes. Each layer
// receives only what it needs: services get repository interfaces, handlers
// get services, and nothing below the handler layer knows HTTP exists.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mlaurent/pantry-planner/internal/auth"
	"github.com/mlaurent/pantry-planner/internal/handler"
	"github.com/mlaurent/pantry-planner/internal/middleware"
	sqliteRepo "github.com/mlaurent/pantry-planner/internal/repository/sqlite"
	"github.com/mlaurent/pantry-planner/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port      int
	DBPath    string        // path to the SQLite database file
	StaticDir string        // frontend assets; empty disables static serving
	JWTSecret string        // HMAC secret for session tokens (required)
	TokenTTL  time.Duration // session token lifetime
	DevMode   bool          // include error detail in 500 responses
}

// Server owns the router, the database connection, and the config. The
// database is closed during graceful shutdown in Start.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and wires the full dependency chain.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the service/handler graph, and
// mounts the API.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register      → create account, issue token
//	POST   /api/auth/login         → issue token
//	POST   /api/auth/logout        → clear token cookie
//	GET    /api/auth/me            → current profile            (auth)
//	GET    /api/articles           → list inventory             (auth)
//	POST   /api/articles           → add article                (auth)
//	GET    /api/articles/{id}      → one article                (auth)
//	PUT    /api/articles/{id}      → patch article              (auth)
//	DELETE /api/articles/{id}      → remove article             (auth)
//	GET/POST /api/recipes, GET/PUT/DELETE /api/recipes/{id}     (auth)
//	GET    /api/weekplan           → get-or-create the grid     (auth)
//	PUT    /api/weekplan           → replace the grid           (auth)
//	GET    /api/suggestions        → shopping + restock lists   (auth)
//	GET    /*                      → static frontend assets
func (s *Server) setupRoutes() error {
	if s.config.DevMode {
		handler.EnableDebugErrors()
	}

	// Global middleware, in order: request ID for tracing, real client IP
	// behind proxies, panic recovery, then our request log.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The frontend may be served from a different origin during development,
	// so the API allows cross-origin calls with the methods and headers the
	// client actually uses.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// One sqlite.DB value implements every repository interface.
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	articleService := service.NewArticleService(s.db, s.logger)
	recipeService := service.NewRecipeService(s.db, s.db, s.logger)
	weekPlanService := service.NewWeekPlanService(s.db, s.db, s.logger)
	suggestionService := service.NewSuggestionService(
		s.db, s.db, s.db, service.DefaultRestockPolicy, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.config.TokenTTL, s.logger)
	articleHandler := handler.NewArticleHandler(articleService, s.logger)
	recipeHandler := handler.NewRecipeHandler(recipeService, s.logger)
	weekPlanHandler := handler.NewWeekPlanHandler(weekPlanService, s.logger)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService, s.logger)

	requireAuth := auth.RequireAuth(tokens, s.db)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/articles", articleHandler.HandleList)
			r.Post("/articles", articleHandler.HandleCreate)
			r.Get("/articles/{id}", articleHandler.HandleGet)
			r.Put("/articles/{id}", articleHandler.HandleUpdate)
			r.Delete("/articles/{id}", articleHandler.HandleDelete)

			r.Get("/recipes", recipeHandler.HandleList)
			r.Post("/recipes", recipeHandler.HandleCreate)
			r.Get("/recipes/{id}", recipeHandler.HandleGet)
			r.Put("/recipes/{id}", recipeHandler.HandleUpdate)
			r.Delete("/recipes/{id}", recipeHandler.HandleDelete)

			r.Get("/weekplan", weekPlanHandler.HandleGet)
			r.Put("/weekplan", weekPlanHandler.HandlePut)

			r.Get("/suggestions", suggestionHandler.HandleGet)
		})
	})

	// Static frontend bundle, when present.
	if s.config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/*", fileServer)
	}

	return nil
}

// Start runs the HTTP server and handles graceful shutdown.
//
// On SIGINT/SIGTERM: stop accepting connections, give in-flight requests 30
// seconds to finish, then close the database (flushes the WAL and releases
// the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
