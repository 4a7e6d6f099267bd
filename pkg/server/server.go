package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	handlers "github.com/LumpsRGood/tablet-use-app/pkg/handlers/report"
	"github.com/LumpsRGood/tablet-use-app/pkg/metrics"
	tabletmiddleware "github.com/LumpsRGood/tablet-use-app/pkg/server/middleware"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/config"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Processor report.Processor
	Mappings  config.Registry
	Metrics   *metrics.Manager
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter builds the full route tree: the report API under /api/v1,
// plus the health and metrics endpoints.
func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	reportHandler := handlers.NewHandler(deps.Processor, deps.Mappings, deps.Metrics)

	router := chi.NewRouter()

	// Metrics wraps Recoverer so recovered panics still count as 500s.
	router.Use(tabletmiddleware.Logger(&deps.Logger))
	router.Use(tabletmiddleware.Metrics(deps.Metrics))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports", reportHandler.CreateReport)
		r.Post("/reports/export", reportHandler.ExportReport)
		r.Get("/profiles", reportHandler.ListProfiles)
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{}))

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)

	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &config.Dependencies.Logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: config.ShutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
