// Package server owns process bootstrap: config, store, cache, log sink,
// middleware stack, and the listen/shutdown lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/madad/app/routes"
	"github.com/shashiranjanraj/madad/config"
	"github.com/shashiranjanraj/madad/internal/store"
	"github.com/shashiranjanraj/madad/pkg/cache"
	"github.com/shashiranjanraj/madad/pkg/logger"
	"github.com/shashiranjanraj/madad/pkg/metrics"
	"github.com/shashiranjanraj/madad/pkg/middleware"
	"github.com/shashiranjanraj/madad/pkg/reqid"
	"github.com/shashiranjanraj/madad/pkg/router"
)

// Start boots the process and blocks until SIGINT/SIGTERM.
//
// A failed store or cache connection does not abort startup: the service
// runs degraded and the /test probe reports the state. Every repository
// operation then fails fast with store.ErrUnavailable.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()

	st, err := store.Connect(ctx)
	if err != nil {
		logger.Warn("store unavailable, running degraded", "error", err.Error())
	} else {
		if err := st.EnsureIndexes(ctx); err != nil {
			logger.Warn("index creation failed", "error", err.Error())
		}
		// Fan application logs out to the log collection as well.
		mh := logger.NewMongoHandler(st.Logs())
		defer mh.Close()
		logger.Use(slog.New(logger.NewMultiHandler(logger.L.Handler(), mh)))
	}

	if err := cache.Connect(ctx); err != nil {
		logger.Warn("cache unavailable, serving uncached", "error", err.Error())
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildHandler(st),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("madad api listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return st.Disconnect(shutdownCtx)
}

// BuildHandler assembles the middleware stack and API routes.
//
// Middleware order (outermost → innermost):
//  1. Prometheus metrics — outermost for accurate total latency
//  2. Recovery          — catches panics before they kill the goroutine
//  3. Request ID        — inject unique ID before anything logs
//  4. Logger            — logs request_id from context
//  5. CORS              — set CORS headers
//  6. Rate limiter      — reject abusers early
func BuildHandler(st *store.Store) http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, st)

	return r.Handler()
}
