package rest

import (
	"context"
	"errors"
	"fmt"
	"listing-service/internal/core/port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики, которые нужны роутеру
type Handlers struct {
	Property  *PropertyHandler
	Directory *DirectoryHandler
	Inquiry   *InquiryHandler
	Health    *HealthHandler
}

// NewRouter собирает chi-роутер со всеми маршрутами API
func NewRouter(handlers Handlers, allowedOrigins []string, logger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", handlers.Health.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/home", handlers.Directory.GetHome)
		r.Get("/agents", handlers.Directory.GetAgents)
		r.Get("/services", handlers.Directory.GetServices)
		r.Post("/contact", handlers.Inquiry.SubmitContact)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", handlers.Property.FindProperties)
			r.Get("/options", handlers.Property.GetFilterOptions)
			r.Get("/{propertyID}", handlers.Property.GetPropertyDetails)
			r.Post("/{propertyID}/inquiries", handlers.Inquiry.SubmitPropertyInquiry)
		})
	})

	return r
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(listenPort string, handler http.Handler, logger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + listenPort,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Start блокируется до остановки сервера
func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("REST server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server", nil)
	return s.httpServer.Shutdown(ctx)
}
