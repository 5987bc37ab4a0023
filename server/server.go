package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/cardsheet/config"
	"github.com/adrianliechti/cardsheet/pkg/auth"
	"github.com/adrianliechti/cardsheet/pkg/session"
	"github.com/adrianliechti/cardsheet/server/api"
	"github.com/adrianliechti/cardsheet/server/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler

	driver *session.Driver
}

func New(cfg *config.Config, driver *session.Driver) (*Server, error) {
	if driver == nil {
		return nil, errors.New("driver is required")
	}

	api, err := api.New(driver, cfg.Region)

	if err != nil {
		return nil, err
	}

	web, err := web.New(driver)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	web.Attach(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Authorizers...))

		api.Attach(r)
	})

	return &Server{
		Config:  cfg,
		Handler: otelhttp.NewHandler(r, "cardsheet"),

		driver: driver,
	}, nil
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s.Handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server listening", "address", s.Address, "template", s.driver.TemplatePath(), "output", s.driver.Output())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
