package di

import (
	"fmt"

	"MetalPulse/internal/domain/repository"
	"MetalPulse/internal/handler/api"
	"MetalPulse/internal/render"
	internalrepo "MetalPulse/internal/repository"
	"MetalPulse/internal/usecase"
	"MetalPulse/internal/view"
	"MetalPulse/pkg/cache"
	"MetalPulse/pkg/config"
	xhttp "MetalPulse/pkg/http"
	pkgkafka "MetalPulse/pkg/kafka"
	applogger "MetalPulse/pkg/logger"
	"MetalPulse/pkg/metrics"
	"MetalPulse/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideKafkaProducer creates the error-log producer, or nil when kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(1),
		pkgkafka.WithAsync(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePayloadCache creates the payload cache: memory only, or memory in
// front of Redis when Redis is enabled.
func ProvidePayloadCache(cfg *config.Config) (cache.Service, error) {
	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MaxSize))
	if !cfg.Cache.Redis.Enabled {
		return mem, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		_ = mem.Close()
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(mem, rc, cfg.Cache.TTL), nil
}

// ProvideHTTPClient creates the upstream HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Upstream.Timeout))
}

// ProvideMarketSource creates the upstream source, cached when enabled.
func ProvideMarketSource(
	cfg *config.Config,
	client *xhttp.Client,
	c cache.Service,
	m repository.Metrics,
	l *applogger.Logger,
) repository.MarketSource {
	src := internalrepo.NewHTTPMarketSource(cfg, client, m)
	if !cfg.Cache.Enabled {
		return src
	}
	return internalrepo.NewCachedMarketSource(src, c, cfg.Cache.TTL, m, l)
}

// ProvideInvalidator exposes cache invalidation when the source is cached.
func ProvideInvalidator(src repository.MarketSource) api.Invalidator {
	if inv, ok := src.(api.Invalidator); ok {
		return inv
	}
	return nil
}

// ProvideDashboardLoader creates the loader use case.
func ProvideDashboardLoader(src repository.MarketSource, m repository.Metrics, l *applogger.Logger) *usecase.DashboardLoader {
	return usecase.NewDashboardLoader(src, m, l)
}

// ProvideChartRegistry creates the per-slot chart registry.
func ProvideChartRegistry(cfg *config.Config, m repository.Metrics, l *applogger.Logger) *render.Registry {
	return render.NewRegistry(render.ChartOptions{
		Theme:      cfg.Dashboard.ChartTheme,
		AssetsHost: cfg.Dashboard.AssetsHost,
	}, m, l)
}

// ProvideDashboardHandler creates the echo handler.
func ProvideDashboardHandler(
	cfg *config.Config,
	l *applogger.Logger,
	loader *usecase.DashboardLoader,
	registry *render.Registry,
	inv api.Invalidator,
) *api.DashboardEchoHandler {
	return api.NewDashboardEchoHandler(l, loader, registry, view.Options{
		Title:      cfg.Dashboard.Title,
		Currency:   cfg.Dashboard.Currency,
		EventLimit: cfg.Dashboard.EventLimit,
	}, inv)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h *api.DashboardEchoHandler,
	producer *pkgkafka.Producer,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, []xhttp.Handler{h}, producer, c)
}
