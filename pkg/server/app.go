package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MetalPulse/pkg/cache"
	"MetalPulse/pkg/config"
	xhttp "MetalPulse/pkg/http"
	pkgkafka "MetalPulse/pkg/kafka"
	applogger "MetalPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handlers   []xhttp.Handler
	producer   *pkgkafka.Producer
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. producer and c may be nil.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handlers []xhttp.Handler,
	producer *pkgkafka.Producer,
	c cache.Service,
) *App {
	return &App{
		cfg:      cfg,
		log:      l,
		handlers: handlers,
		producer: producer,
		cache:    c,
	}
}

// Server builds the HTTP server from config.
func (a *App) Server() *xhttp.Server {
	if a.httpServer != nil {
		return a.httpServer
	}
	opts := []xhttp.ServerOption{
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(a.cfg.Server.SlowThreshold),
		xhttp.WithLogger(a.log),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	if rl := a.cfg.Server.RateLimit; rl.Enabled {
		opts = append(opts, xhttp.WithRateLimit(rl.RPS, rl.Burst))
	}
	a.httpServer = xhttp.NewServer(a.handlers, opts...)
	return a.httpServer
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.producer != nil {
		a.log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   a.cfg.Kafka.FlushEvery,
			CountThreshold: a.cfg.Kafka.Threshold,
			Topic:          a.cfg.Kafka.Topic,
			Publisher:      a.producer,
		})
		a.log.Info("error log shipping enabled",
			applogger.Strings("brokers", a.cfg.Kafka.Brokers),
			applogger.String("topic", a.cfg.Kafka.Topic))
	}

	if err := a.Server().Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("dashboard ready",
		applogger.String("env", a.cfg.Environment),
		applogger.String("upstream", a.cfg.Upstream.BaseURL))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// Flushes pending error logs before the producer goes away.
	a.log.RemoveCollector()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
