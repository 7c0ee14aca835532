package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pastime-app/backend/internal/app"
	"github.com/pastime-app/backend/internal/config"
	"github.com/pastime-app/backend/internal/logger"
	"github.com/pastime-app/backend/internal/middleware"
)

// Mountable is the common interface for all route groups: each hands
// back a subrouter the server mounts at its path prefix.
type Mountable interface {
	Routes() chi.Router
}

// Mounts maps path prefixes under /api to their route groups. The auth
// group is the only one served without a bearer token.
type Mounts struct {
	Auth     Mountable
	User     Mountable
	Swipe    Mountable
	Messages Mountable
	Friends  Mountable
}

// New assembles the full router: process-wide middleware, the public
// auth routes, and the protected groups behind RequireAuth.
func New(appCtx *app.AppContext, m Mounts) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", m.Auth.Routes())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(appCtx.Tokens))
			r.Mount("/user", m.User.Routes())
			r.Mount("/swipe", m.Swipe.Routes())
			r.Mount("/messages", m.Messages.Routes())
			r.Mount("/friends", m.Friends.Routes())
		})
	})

	return r
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains it.
func Start(cfg *config.Config, router chi.Router) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
