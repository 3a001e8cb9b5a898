package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"leadcapture/internal/config"
	"leadcapture/internal/database"
	"leadcapture/internal/logger"
	"leadcapture/internal/notify"
	"leadcapture/internal/ratelimit"
	"leadcapture/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}

	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"debug":       cfg.App.Debug,
		"host":        cfg.App.Host,
		"port":        cfg.App.Port,
	}).Infof("Starting %s", cfg.App.Name)

	// Initialize database
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		log.Info("Closing database connections...")
		if err := database.Close(db); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	limiter, limitStore, err := openLimiter(cfg.RateLimit, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize rate limiter")
	}
	if limitStore != nil {
		defer func() {
			if err := limitStore.Close(); err != nil {
				log.WithError(err).Error("Error closing rate limit store")
			}
		}()
	}

	now := func() time.Time { return time.Now().UTC() }
	mailer := notify.NewMailer(cfg.Email, log)
	notifier := notify.New(mailer, notify.DefaultRegistry(notify.Brand{Name: cfg.App.Name, URL: cfg.App.URL}), notify.Options{
		AdminEmail: cfg.Email.AdminEmail,
		AdminName:  cfg.Email.AdminName,
		Timeout:    cfg.Email.SendTimeout,
		Now:        now,
	}, log)

	handler := services.NewRouter(services.Options{
		DB:         db,
		Notifier:   notifier,
		Limiter:    limiter,
		App:        cfg.App,
		CORS:       cfg.CORS,
		TrustProxy: cfg.RateLimit.TrustProxy,
		Logger:     log,
		Now:        now,
	})

	// Create HTTP server with timeouts
	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     stdlog.New(log.WriterLevel(logrus.ErrorLevel), "", 0),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.WithError(err).Error("Server failed to start")
		return
	case sig := <-shutdown:
		log.Infof("Received signal: %v. Starting graceful shutdown...", sig)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error during graceful shutdown")
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("Shutdown timeout exceeded, forcing close...")
			_ = httpServer.Close()
		}
	}

	log.Info("Server shutdown complete")
}

// openLimiter builds the per-IP limiter over the configured store. A disabled
// limiter returns nil for both values.
func openLimiter(cfg config.RateLimitConfig, log *logrus.Logger) (*ratelimit.Limiter, io.Closer, error) {
	if !cfg.Enabled {
		log.Warn("Rate limiting disabled")
		return nil, nil, nil
	}

	var (
		store  ratelimit.Store
		closer io.Closer
	)
	switch cfg.Store {
	case "badger":
		s, err := ratelimit.OpenBadgerStore(cfg.Path, logger.Component(log, "badger"))
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s, err := ratelimit.OpenRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	default:
		store = ratelimit.NewMemoryStore()
	}

	log.WithFields(logrus.Fields{
		"store":    cfg.Store,
		"requests": cfg.Requests,
		"window":   cfg.Window().String(),
	}).Info("Rate limiting enabled")
	return ratelimit.New(store, cfg.Requests, cfg.Window()), closer, nil
}
