package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Fund-Holdings-Backend/internal/api/middleware"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/config"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	systemService *service.SystemService,
	ingestService *service.IngestService,
	holdingService *service.HoldingService,
	reportService *service.ReportService,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	holdingHandler := handlers.NewHoldingHandler(ingestService, holdingService, cfg.Upload.MaxBytes)
	reportHandler := handlers.NewReportHandler(reportService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})
	})

	r.Post("/input", holdingHandler.Upload)

	r.Group(func(r chi.Router) {
		if cfg.Admin.APIKey != "" {
			r.Use(custommiddleware.APIKeyMiddleware(cfg.Admin.APIKey))
		}
		r.Get("/delete_data", holdingHandler.Delete)
		r.With(custommiddleware.ValidateFundMiddleware).Get("/delete_data/{fund}", holdingHandler.Delete)
	})

	r.Get("/generate_report", reportHandler.Report)
	r.With(custommiddleware.ValidateFundMiddleware).Get("/generate_report/{fund}", reportHandler.Report)

	r.Get("/export_data", holdingHandler.Export)
	r.With(custommiddleware.ValidateFundMiddleware).Get("/export_data/{fund}", holdingHandler.Export)

	// Landing page, optionally carrying a status message from a redirect.
	r.Get("/", holdingHandler.Index)
	r.Get("/{update}", holdingHandler.Index)

	return r
}
